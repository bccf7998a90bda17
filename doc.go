// Package cprintf implements a from-scratch C-style formatted output
// engine: directive parsing, integer and floating-point rendering (via
// an exact Dragon4 free-format decimal converter and a hex-float
// renderer), flag/width composition, and UTF-8/16/32 transcoding,
// exposed through Go-native Sprintf/Snprintf/Fprintf/Printf entry
// points on an Engine rather than C variadics.
package cprintf

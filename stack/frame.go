// Package stack walks live call frames and renders them by verbosity tier.
package stack

import "strings"

// Frame represents one call frame
type Frame struct {
	Function  string            // package qualified function name
	Name      string            // short function name
	File      string
	Line      int
	ArgCount  int
	Locals    map[string]string // local bindings visible at Line
	Constants []string          // constant pool of the function
}

// Package returns the import path of the frame function
func (f *Frame) Package() string {
	return PackagePath(f.Function)
}

// ShortName strips the import path and package name from a qualified function name
func ShortName(function string) string {
	name := function
	if index := strings.LastIndex(name, "/"); index != -1 {
		name = name[index+1:]
	}
	if index := strings.Index(name, "."); index != -1 {
		name = name[index+1:]
	}
	return name
}

// PackagePath returns the import path part of a qualified function name
func PackagePath(function string) string {
	slash := strings.LastIndex(function, "/")
	if index := strings.Index(function[slash+1:], "."); index != -1 {
		return function[:slash+1+index]
	}
	return function
}

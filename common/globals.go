package common

// FryVersion is the current compiler version as a string.
const FryVersion string = "0.1.0"

// ProjectFileName is the name of the optional project file.
const ProjectFileName string = "fry.toml"

// FryFileExt is the file extension for a Fry source file.  It is appended to
// every include path.
const FryFileExt string = ".fry"

// CoreFileName is the name of the prelude file included by every source file.
const CoreFileName string = "core" + FryFileExt

// Package shaders converts the GLSL shader sources of a directory into SPIR-V
// binaries and WGSL text by driving glslangValidator and naga.
//
// A run is a straight line: the directory is listed once, every vertex and
// fragment source is compiled, every source is translated and finally, on
// Windows, the translated files are rewritten with CRLF line endings.
package shaders

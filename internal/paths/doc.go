// Package paths resolves filesystem locations for skillet configuration
// and skill directories, following the XDG base directory specification.
package paths

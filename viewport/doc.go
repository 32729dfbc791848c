// Package viewport tracks the cursor and the visible byte window of a hex
// view as pure offset arithmetic.
//
// The window always starts on a row boundary and spans Rows*BytesPerRow bytes
// (less at end of file). Every navigation command clamps instead of failing
// and is O(1) in the distance travelled: no command reads or iterates the
// bytes between the old and new position.
package viewport

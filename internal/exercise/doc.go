// Package exercise classifies the exercise currently on screen from the
// marker attribute of its container element.
package exercise

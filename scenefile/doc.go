// SPDX-License-Identifier: EPL-2.0

// Package scenefile loads YAML scene descriptions.
//
// A scene names its sources, their audio files or live ports, and
// keyframed spatial poses for each source and for the reference
// listener.  Times are seconds and rotations Euler degrees; both are
// converted to the engine's frame-and-quaternion form at load.
package scenefile

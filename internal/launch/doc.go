// SPDX-License-Identifier: MPL-2.0

// Package launch builds the JVM command line and runs it as a child process.
//
// A Command is built once from a Spec and never changes afterwards. A Launcher
// starts exactly one Command, either waiting for it with inherited standard
// streams or detaching from it. Interrupts received while waiting terminate the
// child and the wait continues, so a waiting Launch always reports the real exit
// code of the child.
package launch

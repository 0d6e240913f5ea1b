// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error context and rendered help cards
// for the failure situations skillex can guide the user out of.
package issue

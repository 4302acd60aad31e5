// Package test holds small assertion helpers shared by the package tests.
package test

import "testing"

func AssertEqual[T comparable](t *testing.T, expected, actual T) bool {
	t.Helper()

	if expected != actual {
		t.Errorf(""+
			"Not equal: \n"+
			"Expected: %v\n"+
			"Actual: %v", expected, actual)
		return false
	}

	return true
}

func AssertBytesEqual(t *testing.T, expected, actual []byte) bool {
	t.Helper()

	if string(expected) != string(actual) {
		t.Errorf(""+
			"Not equal: \n"+
			"Expected: %q\n"+
			"Actual: %q", expected, actual)
		return false
	}

	return true
}

func AssertNoError(t *testing.T, err error) bool {
	t.Helper()

	if err != nil {
		t.Errorf("Unexpected error: %v", err)
		return false
	}

	return true
}

// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

/*
Package slice compliments the standard [slices] package by providing functional
programming utilities (Map, Filter, Distinct) leveraging generics.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter filters a slice, returning only elements where the predicate function evaluates to true.
// Relative order is preserved. The result never aliases input.
func Filter[T any](input []T, predicate func(T) bool) []T {

	// Not pre-allocating to full length to avoid excessive memory on heavy filters
	result := []T{}
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}

	return result
}

// Distinct returns the unique values of input in order of first appearance,
// skipping zero values.
func Distinct[T comparable](input []T) []T {
	var zero T
	seen := make(map[T]struct{}, len(input))
	result := []T{}
	for _, v := range input {
		if v == zero {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// Package heap implements min-heap operations over plain slices.
package heap

// Less reports whether x orders strictly before y.
type Less[T any] func(x, y T) bool

// Order rearranges x into min-heap order.
// If len(x) > 0, the smallest element ends up in x[0].
func Order[T any](x []T, less Less[T]) {
	for i := len(x)/2 - 1; i >= 0; i-- {
		siftDown(x, i, less)
	}
}

// Push adds item to x, keeping the heap invariant.
func Push[T any](x *[]T, item T, less Less[T]) {
	*x = append(*x, item)
	siftUp(*x, len(*x)-1, less)
}

// Pop removes and returns the smallest element of x.
// x must not be empty.
func Pop[T any](x *[]T, less Less[T]) T {
	ret := (*x)[0]
	last := len(*x) - 1
	(*x)[0] = (*x)[last]
	var zero T
	(*x)[last] = zero
	*x = (*x)[:last]
	if len(*x) > 0 {
		siftDown(*x, 0, less)
	}
	return ret
}

func siftUp[T any](x []T, index int, less Less[T]) {
	for index > 0 {
		p := (index - 1) / 2
		if !less(x[index], x[p]) {
			break
		}
		x[p], x[index] = x[index], x[p]
		index = p
	}
}

func siftDown[T any](x []T, index int, less Less[T]) {
	for {
		left := index*2 + 1
		if left >= len(x) {
			return
		}
		c := left
		if right := left + 1; right < len(x) && less(x[right], x[left]) {
			c = right
		}
		if !less(x[c], x[index]) {
			return
		}
		x[c], x[index] = x[index], x[c]
		index = c
	}
}

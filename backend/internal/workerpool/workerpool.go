// Package workerpool runs a fixed set of goroutines over a queue of inputs
// and hands every result back to the calling goroutine.
package workerpool

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"vincit.fi/gallery-thumbs/common/logger"
)

const DefaultThreadCount = 4

var ErrTaskPanicked = errors.New("task panicked")

type Result[O any] struct {
	Index int
	Value O
	Err   error
}

// Run calls fn once for every input using at most threadCount goroutines.
// onResult is called from the goroutine that called Run, one result at a
// time and in completion order. Run returns when every input has settled.
func Run[I any, O any](inputs []I, threadCount int, fn func(I) (O, error), onResult func(Result[O])) {
	if len(inputs) == 0 {
		return
	}
	if threadCount <= 0 {
		threadCount = DefaultThreadCount
	}
	// No point in spinning up goroutines that would never get any work
	threadCount = min(threadCount, len(inputs))

	inputChannel := make(chan int, len(inputs))
	for i := range inputs {
		inputChannel <- i
	}
	close(inputChannel)

	outputChannel := make(chan Result[O], threadCount)
	var wg sync.WaitGroup
	for i := 0; i < threadCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range inputChannel {
				outputChannel <- call(index, inputs[index], fn)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(outputChannel)
	}()

	for result := range outputChannel {
		if onResult != nil {
			onResult(result)
		}
	}
}

func call[I any, O any](index int, input I, fn func(I) (O, error)) (result Result[O]) {
	result.Index = index
	defer func() {
		if r := recover(); r != nil {
			logger.Error.Printf("Task %d panicked: %v\n%s", index, r, debug.Stack())
			result.Err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	result.Value, result.Err = fn(input)
	return result
}

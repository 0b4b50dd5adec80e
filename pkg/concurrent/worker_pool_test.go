package concurrent_test

import (
	"testing"

	"github.com/brafiq/bearmaps/pkg/concurrent"
	"github.com/stretchr/testify/assert"
)

func TestWorkerPoolProcessesAllJobs(t *testing.T) {
	wp := concurrent.NewWorkerPool[int, int](4, 100)

	for i := 1; i <= 100; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Start(func(job int) int { return job * 2 })
	wp.Wait()

	sum := 0
	count := 0
	for res := range wp.CollectResults() {
		sum += res
		count++
	}

	assert.Equal(t, 100, count)
	assert.Equal(t, 10100, sum)
}

func TestWorkerPoolCloseBeforeStart(t *testing.T) {
	// Queueing everything and closing before Start is the preprocessing
	// pattern; workers must still drain the buffered queue.
	wp := concurrent.NewWorkerPool[string, int](2, 3)
	wp.AddJob("a")
	wp.AddJob("bb")
	wp.AddJob("ccc")
	wp.Close()
	wp.Start(func(job string) int { return len(job) })
	wp.Wait()

	total := 0
	for res := range wp.CollectResults() {
		total += res
	}
	assert.Equal(t, 6, total)
}

func TestWorkerPoolNoJobs(t *testing.T) {
	wp := concurrent.NewWorkerPool[int, int](2, 1)
	wp.Close()
	wp.Start(func(job int) int { return job })
	wp.Wait()

	count := 0
	for range wp.CollectResults() {
		count++
	}
	assert.Zero(t, count)
}

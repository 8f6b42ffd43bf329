package translate

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// batcher splits items into prompts and sends them through a provider's
// complete function. Provider translators embed it.
type batcher struct {
	options  Options
	provider string
	complete func(ctx context.Context, prompt string) (string, error)
}

func (b *batcher) batchSize() int {
	if b.options.BatchSize > 0 {
		return b.options.BatchSize
	}
	return DefaultBatchSize
}

func (b *batcher) batches(items []TranslationItem) [][]TranslationItem {
	size := b.batchSize()
	var batches [][]TranslationItem
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		batches = append(batches, items[i:end])
	}
	return batches
}

func (b *batcher) Translate(
	ctx context.Context,
	items []TranslationItem,
) ([]TranslationResult, error) {
	if len(items) == 0 {
		return []TranslationResult{}, nil
	}

	var allResults []TranslationResult
	for i, batch := range b.batches(items) {
		results, err := b.translateBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d failed: %w", i, err)
		}
		allResults = append(allResults, results...)
	}

	sort.Slice(allResults, func(i, j int) bool {
		return allResults[i].Index < allResults[j].Index
	})

	return allResults, nil
}

// Items are split into batches of BatchSize (default 50). Each batch becomes
// one API request. Workers (up to concurrency) pull batches from a shared queue.
func (b *batcher) TranslateWithConcurrency(
	ctx context.Context,
	items []TranslationItem,
	concurrency int,
) ([]TranslationResult, error) {
	if len(items) == 0 {
		return []TranslationResult{}, nil
	}

	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	batches := b.batches(items)
	if len(batches) == 1 {
		return b.translateBatch(ctx, batches[0])
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type batchResult struct {
		Index   int
		Results []TranslationResult
		Error   error
	}

	workChan := make(chan int)
	resultChan := make(chan batchResult, len(batches))

	var wg sync.WaitGroup
	for i := 0; i < concurrency && i < len(batches); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case batchIdx, ok := <-workChan:
					if !ok {
						return
					}
					if ctx.Err() != nil {
						return
					}

					results, err := b.translateBatch(ctx, batches[batchIdx])
					if err != nil {
						cancel()
					}
					resultChan <- batchResult{
						Index:   batchIdx,
						Results: results,
						Error:   err,
					}
				}
			}
		}()
	}

	go func() {
		defer close(workChan)
		for i := range batches {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var (
		allResults []TranslationResult
		firstErr   error
		done       int
	)
	for result := range resultChan {
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf(
				"batch %d failed: %w",
				result.Index,
				result.Error,
			)
			cancel()
		}
		if result.Error == nil {
			allResults = append(allResults, result.Results...)
			done++
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if done != len(batches) {
		return nil, fmt.Errorf("translation cancelled: %w", context.Cause(ctx))
	}

	sort.Slice(allResults, func(i, j int) bool {
		return allResults[i].Index < allResults[j].Index
	})

	return allResults, nil
}

func (b *batcher) translateBatch(
	ctx context.Context,
	items []TranslationItem,
) ([]TranslationResult, error) {
	responseText, err := b.complete(ctx, BuildPrompt(b.options, items))
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text in %s response", b.provider)
	}

	responseText = cleanJSONResponse(responseText)

	results, err := extractTranslationResults(responseText)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to parse JSON response: %w (response: %s)",
			err,
			truncateString(responseText, 200),
		)
	}

	if len(results) != len(items) {
		return nil, fmt.Errorf(
			"expected %d results, got %d",
			len(items),
			len(results),
		)
	}

	return results, nil
}

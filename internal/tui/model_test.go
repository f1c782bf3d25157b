package tui

import (
	"iter"
	"testing"

	"github.com/verte-zerg/kasiski/internal/model"
)

func staticScan(candidates []model.Candidate) iter.Seq2[model.Candidate, error] {
	return func(yield func(model.Candidate, error) bool) {
		for _, c := range candidates {
			if !yield(c, nil) {
				return
			}
		}
	}
}

func TestModelCollectsBestCandidates(t *testing.T) {
	scan := staticScan([]model.Candidate{
		{Key: "aaa", Plaintext: "xxx", Score: 40},
		{Key: "bbb", Plaintext: "yyy", Score: 10},
		{Key: "ccc", Plaintext: "zzz", Score: 25},
	})
	m := NewModel(scan, 2)

	msg := m.pullBatch()
	batch, ok := msg.(batchMsg)
	if !ok {
		t.Fatalf("expected batchMsg, got %T", msg)
	}
	if !batch.done {
		t.Fatalf("expected scan to finish within one batch")
	}
	if _, cmd := m.Update(batch); cmd != nil {
		t.Fatalf("expected no further pull after a finished batch")
	}

	best := m.Best()
	if len(best) != 2 {
		t.Fatalf("expected 2 kept candidates, got %d", len(best))
	}
	if best[0].Key != "bbb" || best[1].Key != "ccc" {
		t.Fatalf("expected best order bbb, ccc; got %v", best)
	}
}

func TestModelStopsPullingAfterDone(t *testing.T) {
	scan := staticScan(nil)
	m := NewModel(scan, 3)
	msg := m.pullBatch()
	batch, ok := msg.(batchMsg)
	if !ok {
		t.Fatalf("expected batchMsg, got %T", msg)
	}
	_, cmd := m.Update(batch)
	if cmd != nil {
		t.Fatalf("expected no further pull after done")
	}
	if !m.done {
		t.Fatalf("expected model marked done")
	}
}

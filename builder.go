package corezoid

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/petrijr/corezoid/pkg/api"
)

// Batch accumulates operations for one envelope:
//
//	batch := corezoid.NewBatch(0)
//	ref, _ := batch.Create("1023", "", map[string]any{"amount": 100})
//	_ = batch.ModifyByRef("1023", "order-7", map[string]any{"status": "paid"})
//
//	res, err := client.SendBatch(ctx, batch)
//
// The batch preserves insertion order and enforces its size cap at add
// time; the envelope builder enforces it again before signing. A Batch
// is not safe for concurrent use.
type Batch struct {
	ops []api.Operation
	max int
}

// NewBatch creates a batch capped at maxSize operations. A maxSize of
// zero uses DefaultMaxBatchSize.
func NewBatch(maxSize int) *Batch {
	if maxSize <= 0 {
		maxSize = DefaultMaxBatchSize
	}
	return &Batch{max: maxSize}
}

// Add appends an operation. It fails with *api.ValidationError when the
// batch is full or the operation is malformed.
func (b *Batch) Add(op api.Operation) error {
	if b.IsFull() {
		return &api.ValidationError{Reason: "batch is full (max size: " + strconv.Itoa(b.max) + ")"}
	}
	if err := op.Validate(); err != nil {
		return err
	}
	b.ops = append(b.ops, op)
	return nil
}

// Create appends a create operation and returns the reference used.
// When ref is empty a unique reference is generated.
func (b *Batch) Create(convID, ref string, data map[string]any) (string, error) {
	if ref == "" {
		ref = newTaskRef()
	}
	if err := b.Add(api.NewCreate(convID, ref, data)); err != nil {
		return "", err
	}
	return ref, nil
}

// ModifyByRef appends a modify operation addressed by reference.
func (b *Batch) ModifyByRef(convID, ref string, data map[string]any) error {
	return b.Add(api.NewModifyByRef(convID, ref, data))
}

// ModifyByID appends a modify operation addressed by object ID.
func (b *Batch) ModifyByID(convID, objID string, data map[string]any) error {
	return b.Add(api.NewModifyByID(convID, objID, data))
}

// Get appends a read operation addressed by reference.
func (b *Batch) Get(convID, ref string) error {
	return b.Add(api.NewGetByRef(convID, ref))
}

// GetByID appends a read operation addressed by object ID.
func (b *Batch) GetByID(convID, objID string) error {
	return b.Add(api.NewGetByID(convID, objID))
}

// Clear removes all accumulated operations.
func (b *Batch) Clear() {
	b.ops = nil
}

// Size returns the number of accumulated operations.
func (b *Batch) Size() int { return len(b.ops) }

// IsEmpty reports whether the batch holds no operations.
func (b *Batch) IsEmpty() bool { return len(b.ops) == 0 }

// IsFull reports whether the batch reached its size cap.
func (b *Batch) IsFull() bool { return len(b.ops) >= b.max }

// Operations returns the accumulated operations in insertion order.
// The returned slice is a copy.
func (b *Batch) Operations() []api.Operation {
	out := make([]api.Operation, len(b.ops))
	copy(out, b.ops)
	return out
}

// newTaskRef generates a unique task reference of the form
// task-<unix>-<8 hex chars>.
func newTaskRef() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "task-" + strconv.FormatInt(time.Now().Unix(), 10) + "-" + id[:8]
}

package docstore

import (
	"context"
	"fmt"
)

// All drains a cursor into a slice, assigning store keys to Identifiable documents.
func All[T any](ctx context.Context, cur Cursor) ([]T, error) {
	defer cur.Close(ctx)

	out := make([]T, 0)
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, fmt.Errorf("decode %s: %w", cur.ID(), err)
		}
		if doc, ok := any(&item).(Identifiable); ok {
			doc.SetID(cur.ID())
		}
		out = append(out, item)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindAll runs q on c and decodes every result.
func FindAll[T any](ctx context.Context, c Collection, q Query) ([]T, error) {
	cur, err := c.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return All[T](ctx, cur)
}

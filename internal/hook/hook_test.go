package hook

import (
	"context"
	"errors"
	"testing"
)

func TestRunOrder(t *testing.T) {
	var calls []int
	hooks := []Hook[int]{}
	for i := 0; i < 3; i++ {
		i := i
		hooks = append(hooks, func(ctx context.Context, v *int) (*int, error) {
			calls = append(calls, i)
			return nil, nil
		})
	}

	v := 0
	if _, err := Run(context.Background(), hooks, &v); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(calls) != 3 || calls[0] != 0 || calls[1] != 1 || calls[2] != 2 {
		t.Fatalf("expected calls [0 1 2], got %v", calls)
	}
}

func TestRunNilKeepsValue(t *testing.T) {
	ten := 10
	hooks := []Hook[int]{
		func(ctx context.Context, v *int) (*int, error) { return &ten, nil },
		func(ctx context.Context, v *int) (*int, error) {
			if *v != 10 {
				t.Fatalf("second hook saw %d, want 10", *v)
			}
			return nil, nil
		},
	}

	v := 1
	out, err := Run(context.Background(), hooks, &v)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if *out != 10 {
		t.Fatalf("got %d, want the first hook's replacement 10", *out)
	}
}

func TestRunErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	var thirdRan bool
	hooks := []Hook[string]{
		func(ctx context.Context, v *string) (*string, error) { return nil, nil },
		func(ctx context.Context, v *string) (*string, error) { return nil, boom },
		func(ctx context.Context, v *string) (*string, error) {
			thirdRan = true
			return nil, nil
		},
	}

	s := "x"
	if _, err := Run(context.Background(), hooks, &s); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if thirdRan {
		t.Fatal("hook after the failing one still ran")
	}
}

func TestRunEmptyChain(t *testing.T) {
	v := 7
	out, err := Run(context.Background(), nil, &v)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != &v {
		t.Fatal("empty chain should return the input pointer")
	}
}

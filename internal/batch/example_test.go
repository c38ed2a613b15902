package batch_test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/docextract/internal/batch"
)

func ExampleExecute() {
	items := []string{"a", "b", "c"}

	outcomes, err := batch.Execute(context.Background(), items, 3, func(ctx context.Context, s string) (string, error) {
		if s == "b" {
			return "", errors.New("boom")
		}
		return strings.ToUpper(s), nil
	})
	if err != nil {
		fmt.Println("batch rejected:", err)
		return
	}

	for _, o := range outcomes {
		if o.OK() {
			fmt.Printf("%d %s %s\n", o.Index, o.Status, o.Value)
		} else {
			fmt.Printf("%d %s %v\n", o.Index, o.Status, o.Err)
		}
	}
	// Output:
	// 0 succeeded A
	// 1 failed boom
	// 2 succeeded C
}

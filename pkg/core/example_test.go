package core_test

import (
	"context"
	"fmt"

	"github.com/quadlens/quadlens/pkg/core"
)

// ExampleInspect demonstrates a one-off, in-memory analysis.
func ExampleInspect() {
	content := "for row in rows:\n    db.execute(\"SELECT * FROM users\")\n"
	report, err := core.Inspect(context.Background(), content, "job.py")
	if err != nil {
		fmt.Println("inspect failed:", err)
		return
	}
	fmt.Printf("performance findings: %d\n", report.Performance.Count)
}

package daycraft_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/daycraft"
	"github.com/aretw0/daycraft/pkg/collections"
)

// Example_basic opens a profile, signs in and tracks a task.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "daycraft-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()
	app, err := daycraft.Open(ctx, tmpDir, daycraft.WithAuthDelays(0, 0))
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	user, err := app.Session.Login(ctx, "ada@example.com", "secret")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Hello,", user.Name)

	task, _, err := app.Tasks.Add(ctx, "2024-01-01", "Buy milk")
	if err != nil {
		log.Fatal(err)
	}
	if _, err := app.Tasks.Toggle(ctx, "2024-01-01", task.ID); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d%% done\n", app.Tasks.Progress("2024-01-01").Rounded())

	// Output:
	// Hello, ada
	// 100% done
}

// Example_bucketList groups goals by category.
func Example_bucketList() {
	ctx := context.Background()
	app, err := daycraft.Open(ctx, "", daycraft.WithAdapter("memory"))
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	run, _, _ := app.Bucket.Add(ctx, "Run a marathon", collections.CategoryPersonal)
	_, _, _ = app.Bucket.Add(ctx, "Learn to cook", collections.CategoryPersonal)
	_, _, _ = app.Bucket.Add(ctx, "Visit Japan", collections.CategoryTravel)
	_, _ = app.Bucket.Toggle(ctx, run.ID)

	for _, g := range app.Bucket.Groups() {
		fmt.Printf("%s: %d/%d\n", g.Category, g.Progress.Completed, g.Progress.Total)
	}
	fmt.Printf("overall: %d%%\n", app.Bucket.Progress().Rounded())

	// Output:
	// Personal: 1/2
	// Travel: 0/1
	// overall: 33%
}

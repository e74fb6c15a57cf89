// Command client votes on a product from the terminal. It renders the
// optimistic count immediately and reports the confirmed count (or the
// rollback) once the server call settles.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"launchboard/internal/client"
	"launchboard/internal/config"
	"launchboard/internal/domain/vote"
	"launchboard/internal/optimistic"
)

func main() {
	cfg := config.Load()

	var (
		server    = flag.String("server", "http://localhost:8080", "launchboard server URL")
		email     = flag.String("email", "", "account email")
		password  = flag.String("password", "", "account password")
		slug      = flag.String("product", "", "product slug")
		direction = flag.String("direction", "up", "vote direction: up or down")
		timeout   = flag.Duration("timeout", cfg.VoteTimeout, "vote call timeout")
	)
	flag.Parse()

	if *email == "" || *password == "" || *slug == "" {
		log.Fatal("email, password and product are required")
	}

	dir, err := vote.ParseDirection(*direction)
	if err != nil {
		log.Fatalf("invalid direction %q", *direction)
	}

	ctx := context.Background()
	c := client.New(*server)

	if _, err := c.Login(ctx, *email, *password); err != nil {
		log.Fatalf("login: %v", err)
	}

	detail, err := c.ProductBySlug(ctx, *slug)
	if err != nil {
		log.Fatalf("fetch product: %v", err)
	}
	fmt.Printf("%s: %d votes\n", detail.Product.Name, detail.Product.VoteCount)

	dispatch := func(ctx context.Context, d vote.Direction) (int64, error) {
		res, err := c.Vote(ctx, detail.Product.ID, d)
		if err != nil {
			return 0, err
		}
		return res.Count, nil
	}

	ctrl := optimistic.NewController(detail.Product.VoteCount, detail.HasVoted, dispatch,
		optimistic.WithTimeout(*timeout),
		optimistic.WithSettleFunc(func(s optimistic.Settlement) {
			if s.Confirmed {
				fmt.Printf("confirmed: %d votes\n", s.Count)
				return
			}
			fmt.Printf("vote failed, rolled back: %v\n", s.Err)
		}),
	)

	ctrl.Vote(dir)
	fmt.Printf("showing: %d votes (pending)\n", ctrl.Snapshot().Displayed())

	ctrl.Wait()
	fmt.Printf("final: %d votes\n", ctrl.Snapshot().Displayed())
}

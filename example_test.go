package birthday_test

import (
	"context"
	"fmt"
	"log"

	"github.com/kdvornichenko/birthday"
	"github.com/kdvornichenko/birthday/internal/config"
	"github.com/kdvornichenko/birthday/pkg/ports"
)

// ExampleNew wires the service with a custom courier and walks one session
// from the schema defaults to a delivered message. Swapping the courier is
// how tests and previews observe the outbound text without a bot token.
func ExampleNew() {
	var delivered string
	courier := ports.CourierFunc(func(ctx context.Context, message string) error {
		delivered = message
		return nil
	})

	app, err := birthday.New(&config.Config{Lang: "en"}, birthday.WithCourier(courier))
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	ctx := context.Background()
	manager := app.Manager()

	resp, err := manager.Start(ctx)
	if err != nil {
		log.Fatal(err)
	}

	for _, in := range []struct{ field, value string }{
		{"name", "Ada"},
		{"surname", "Lovelace"},
		{"alcohol", "red"},
	} {
		if _, err := manager.SetField(ctx, resp.ID, in.field, in.value); err != nil {
			log.Fatal(err)
		}
	}

	result, err := manager.Submit(ctx, resp.ID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Response.Notice.Status)
	fmt.Println(delivered)
	// Output:
	// delivered
	// Full name: Ada Lovelace
	// Will you come?: I will come
	// Alcohol?: Red wine
	// Something else? (optional): None
}

// Command cli is a small operator tool: it can register users, seed a
// demo account with a few days of activity, and inspect or mutate a
// wallet without going through the HTTP surface.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/amirasaad/greenpoints/infra/initializer"
	"github.com/amirasaad/greenpoints/pkg/domain/user"
	"github.com/amirasaad/greenpoints/pkg/dto"
	"github.com/amirasaad/greenpoints/pkg/repository"
	pointssvc "github.com/amirasaad/greenpoints/pkg/service/points"
	usersvc "github.com/amirasaad/greenpoints/pkg/service/user"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	deps, err := initializer.Initialize()
	if err != nil {
		color.Red("Failed to initialize: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pointsSvc := pointssvc.New(deps.UoW, deps.Bus, deps.Logger)
	userSvc := usersvc.New(deps.UoW, deps.Logger)

	switch os.Args[1] {
	case "register":
		if len(os.Args) < 4 {
			fmt.Println("Usage: cli register <name> <email>")
			return
		}
		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			color.Red("Failed to read password: %v", err)
			return
		}
		u, err := userSvc.Register(ctx, dto.UserCreate{
			Name:     os.Args[2],
			Email:    os.Args[3],
			Password: string(password),
		})
		if err != nil {
			color.Red("Error registering: %v", err)
			return
		}
		color.Green("Registered %s (%s)", u.Name, u.ID)
	case "seed":
		if err := seed(ctx, deps); err != nil {
			color.Red("Error seeding: %v", err)
			return
		}
		color.Green("Seeded demo user demo@greenpoints.dev (password: greenpoints)")
	case "balance":
		if len(os.Args) < 3 {
			fmt.Println("Usage: cli balance <email>")
			return
		}
		userID, err := lookup(ctx, deps.UoW, os.Args[2])
		if err != nil {
			color.Red("Error: %v", err)
			return
		}
		b, err := pointsSvc.Balance(ctx, userID)
		if err != nil {
			color.Red("Error fetching balance: %v", err)
			return
		}
		color.Cyan("Balance: %d points", b.Balance)
		fmt.Printf("Tier: %s\nTotal earned: %d\nTotal redeemed: %d\nItems recycled: %d\nWeight recycled: %.1f kg\n",
			b.Tier, b.TotalEarned, b.TotalRedeemed, b.TotalItemsRecycled, b.TotalWeightRecycled)
	case "submit":
		if len(os.Args) < 6 {
			fmt.Println("Usage: cli submit <email> <item_type> <condition> <quantity>")
			return
		}
		userID, err := lookup(ctx, deps.UoW, os.Args[2])
		if err != nil {
			color.Red("Error: %v", err)
			return
		}
		quantity, err := strconv.Atoi(os.Args[5])
		if err != nil {
			color.Red("Invalid quantity: %v", err)
			return
		}
		result, err := pointsSvc.Submit(ctx, userID, dto.SubmitEWaste{
			ItemType:  os.Args[3],
			Condition: os.Args[4],
			Quantity:  quantity,
		})
		if err != nil {
			color.Red("Error submitting: %v", err)
			return
		}
		color.Green("Credited %d points. New balance: %d (%s)", result.Points, result.NewBalance, result.Tier)
	case "redeem":
		if len(os.Args) < 5 {
			fmt.Println("Usage: cli redeem <email> <points> <reward>")
			return
		}
		userID, err := lookup(ctx, deps.UoW, os.Args[2])
		if err != nil {
			color.Red("Error: %v", err)
			return
		}
		points, err := strconv.Atoi(os.Args[3])
		if err != nil {
			color.Red("Invalid points: %v", err)
			return
		}
		result, err := pointsSvc.Redeem(ctx, userID, dto.Redeem{Points: points, RedeemFor: os.Args[4]})
		if err != nil {
			color.Red("Error redeeming: %v", err)
			return
		}
		if result.Used2XValue {
			color.Yellow("2X window active: %d points redeemed at %d effective value", result.PointsRedeemed, result.EffectiveValue)
		}
		color.Green("Redeemed %d points. New balance: %d", result.PointsRedeemed, result.NewBalance)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  register <name> <email>")
	fmt.Println("  seed")
	fmt.Println("  balance <email>")
	fmt.Println("  submit <email> <item_type> <condition> <quantity>")
	fmt.Println("  redeem <email> <points> <reward>")
}

func lookup(ctx context.Context, uow repository.UnitOfWork, email string) (uuid.UUID, error) {
	var id uuid.UUID
	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		id = u.ID
		return nil
	})
	return id, err
}

// seed registers a demo user and backfills a week of submissions so the
// dashboard and tier ladder have something to show.
func seed(ctx context.Context, deps *initializer.Deps) error {
	userSvc := usersvc.New(deps.UoW, deps.Logger)
	u, err := userSvc.Register(ctx, dto.UserCreate{
		Name:     "Demo Recycler",
		Email:    "demo@greenpoints.dev",
		Password: "greenpoints",
		City:     "Portland",
		State:    "OR",
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return fmt.Errorf("demo user already exists")
		}
		return err
	}

	clock := time.Now().AddDate(0, 0, -7)
	pointsSvc := pointssvc.NewWithClock(deps.UoW, deps.Bus, deps.Logger, func() time.Time {
		return clock
	})

	submissions := []dto.SubmitEWaste{
		{ItemType: "Smartphone", Condition: "Working", Quantity: 1, Weight: 0.2},
		{ItemType: "Laptop", Condition: "Repairable", Quantity: 1, Weight: 2.5},
		{ItemType: "Battery", Condition: "Dead", Quantity: 4, Weight: 0.5},
		{ItemType: "Cable", Condition: "Working", Quantity: 6, Weight: 1.0},
	}
	for _, sub := range submissions {
		if _, err := pointsSvc.Submit(ctx, u.ID, sub); err != nil {
			return err
		}
		clock = clock.Add(36 * time.Hour)
	}
	return nil
}

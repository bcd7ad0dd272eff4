package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hajjcare/accounts/cmd/app/commands"
	"github.com/hajjcare/accounts/internal/app"
	"github.com/hajjcare/accounts/internal/config"
)

func getAccountCommands() []*cli.Command {
	formatFlag := &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}

	return []*cli.Command{
		{
			Name:  "create-account",
			Usage: "Create an account with at least one login identifier",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Login username"},
				&cli.StringFlag{Name: "national-id", Usage: "14 digit national ID"},
				&cli.StringFlag{Name: "passport-number", Usage: "Passport number"},
				&cli.StringFlag{Name: "mobile-number", Usage: "Mobile number"},
				&cli.StringFlag{Name: "first-name", Usage: "First name"},
				&cli.StringFlag{Name: "middle-name", Usage: "Middle name"},
				&cli.StringFlag{Name: "last-name", Usage: "Last name"},
				&cli.Int64Flag{Name: "hajj-id", Usage: "Pilgrim record ID"},
				&cli.StringFlag{
					Name:    "role",
					Aliases: []string{"r"},
					Value:   "pilgrim",
					Usage:   "One of admin, moderator, pilgrim, doctor",
				},
				&cli.BoolFlag{
					Name:  "generate-password",
					Usage: "Generate a random password and print it once",
				},
				formatFlag,
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				opts := commands.CreateAccountOptions{
					Username:         cmd.String("username"),
					NationalID:       cmd.String("national-id"),
					PassportNumber:   cmd.String("passport-number"),
					MobileNumber:     cmd.String("mobile-number"),
					FirstName:        cmd.String("first-name"),
					MiddleName:       cmd.String("middle-name"),
					LastName:         cmd.String("last-name"),
					Role:             cmd.String("role"),
					GeneratePassword: cmd.Bool("generate-password"),
					Format:           cmd.String("format"),
				}
				if cmd.IsSet("hajj-id") {
					hajjID := cmd.Int64("hajj-id")
					opts.HajjID = &hajjID
				}

				return commands.RunCreateAccount(
					ctx,
					accountUseCase,
					container.SecretService(),
					container.Logger(),
					opts,
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "set-password",
			Usage: "Replace the password of an existing account",
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Account ID",
				},
				&cli.BoolFlag{
					Name:  "generate",
					Usage: "Generate a random password instead of prompting",
				},
				formatFlag,
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				return commands.RunSetPassword(
					ctx,
					accountUseCase,
					container.SecretService(),
					container.Logger(),
					cmd.Int64("id"),
					cmd.Bool("generate"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}

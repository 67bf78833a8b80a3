package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/moneta/internal/domain"
	"github.com/ivlev/moneta/internal/infrastructure/auth"
	"github.com/ivlev/moneta/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "moneta-cli",
		Short: "Moneta CLI tool",
		Long:  `A command line interface for interacting with the Moneta operation engine.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Moneta API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated requests")

	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(rateCmd())
	rootCmd.AddCommand(replenishCmd())
	rootCmd.AddCommand(withdrawCmd())
	rootCmd.AddCommand(transferCmd())
	rootCmd.AddCommand(operationCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/ready", nil)
		},
	}
}

func rateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate [from] [to]",
		Short: "Query the exchange rate between two currencies",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/rates?from="+args[0]+"&to="+args[1], nil)
		},
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var userID int64
	var funds, currency string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/accounts", map[string]any{
				"user_id":  userID,
				"funds":    funds,
				"currency": currency,
			})
		},
	}
	createCmd.Flags().Int64Var(&userID, "user", 0, "Owner user ID")
	createCmd.Flags().StringVar(&funds, "funds", "0", "Initial funds")
	createCmd.Flags().StringVar(&currency, "currency", "RUB", "Account currency")

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get an account by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/accounts/"+args[0], nil)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list [user-id]",
		Short: "List accounts owned by a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/users/"+args[0]+"/accounts", nil)
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd)

	return cmd
}

func replenishCmd() *cobra.Command {
	var amount, currency string

	cmd := &cobra.Command{
		Use:   "replenish [account-id]",
		Short: "Replenish an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/accounts/"+args[0]+"/replenish", map[string]any{
				"amount":   amount,
				"currency": currency,
			})
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to deposit")
	cmd.Flags().StringVar(&currency, "currency", "RUB", "Currency of the amount")

	return cmd
}

func withdrawCmd() *cobra.Command {
	var amount, currency string

	cmd := &cobra.Command{
		Use:   "withdraw [account-id]",
		Short: "Withdraw from an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/accounts/"+args[0]+"/withdraw", map[string]any{
				"amount":   amount,
				"currency": currency,
			})
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to withdraw")
	cmd.Flags().StringVar(&currency, "currency", "RUB", "Currency of the amount")

	return cmd
}

func transferCmd() *cobra.Command {
	var from, to int64
	var amount string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer funds between accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodPost, "/api/v1/transfers", map[string]any{
				"from_account_id": from,
				"to_account_id":   to,
				"amount":          amount,
			})
		},
	}
	cmd.Flags().Int64Var(&from, "from", 0, "Source account ID")
	cmd.Flags().Int64Var(&to, "to", 0, "Destination account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in the source account's currency")

	return cmd
}

func operationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operation",
		Short: "Operation audit trail",
	}

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get an operation by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/operations/"+args[0], nil)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list [account-id]",
		Short: "List operations touching an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return request(http.MethodGet, "/api/v1/accounts/"+args[0]+"/operations", nil)
		},
	}

	cmd.AddCommand(getCmd, listCmd)

	return cmd
}

func tokenCmd() *cobra.Command {
	var secret string
	var userID int64
	var grants []string
	var expiration time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a JWT for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := domain.Identity{UserID: userID}
			for _, g := range grants {
				grant := domain.Grant(g)
				if !grant.IsValid() {
					return fmt.Errorf("unknown grant %q", g)
				}
				identity.Grants = append(identity.Grants, grant)
			}

			manager := auth.NewJWTManager(secret, expiration)
			signed, err := manager.Generate(identity)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "JWT signing secret")
	cmd.Flags().Int64Var(&userID, "user", 0, "User ID to embed in the token")
	cmd.Flags().StringSliceVar(&grants, "grants", nil, "Grants to embed, e.g. account:view-self")
	cmd.Flags().DurationVar(&expiration, "expiration", 24*time.Hour, "Token lifetime")

	return cmd
}

func migrateCmd() *cobra.Command {
	var databaseURL, path string

	cmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Run database migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "up":
				return postgres.RunMigrations(databaseURL, path)
			case "down":
				return postgres.RunMigrationsDown(databaseURL, path)
			default:
				return fmt.Errorf("unknown direction %q", args[0])
			}
		},
	}
	cmd.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.Flags().StringVar(&path, "path", "migrations", "Migrations directory")

	return cmd
}

// request performs an API call and prints the JSON response.
func request(method, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, raw)
	}

	if len(raw) == 0 {
		fmt.Println("OK")
		return nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		fmt.Println(string(raw))
		return nil
	}

	printJSON(decoded)
	return nil
}

func printJSON(v any) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", v)
		return
	}
	fmt.Println(string(encoded))
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stockledger-cli",
		Short: "StockLedger CLI tool",
		Long:  `A command line interface for interacting with the StockLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the StockLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconciliation operations",
	}

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Run a full reconciliation sweep",
		Run: func(cmd *cobra.Command, args []string) {
			runReport()
		},
	}

	productCmd := &cobra.Command{
		Use:   "product <id>",
		Short: "Verify one product's stored stock",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runCheck("/api/v1/reconciliation/products/" + args[0])
		},
	}

	transactionCmd := &cobra.Command{
		Use:   "transaction <id>",
		Short: "Verify one transaction's stored total",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runCheck("/api/v1/reconciliation/transactions/" + args[0])
		},
	}

	reconcileCmd.AddCommand(reportCmd, productCmd, transactionCmd)
	rootCmd.AddCommand(reconcileCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func fetch(path string) map[string]any {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	return result
}

func runReport() {
	result := fetch("/api/v1/reconciliation/report")

	consistent, _ := result["consistent"].(bool)
	if consistent {
		fmt.Println("Reconciliation PASSED")
	} else {
		fmt.Println("Reconciliation FAILED: drift detected")
	}
	fmt.Printf("Products checked: %v\n", result["products_checked"])
	fmt.Printf("Transactions checked: %v\n", result["transactions_checked"])

	printDrift := func(key, label string) {
		entries, ok := result[key].([]any)
		if !ok {
			return
		}
		for _, e := range entries {
			raw, _ := json.Marshal(e)
			fmt.Printf("%s: %s\n", label, raw)
		}
	}
	printDrift("stock_drift", "Stock drift")
	printDrift("total_drift", "Total drift")

	if !consistent {
		os.Exit(1)
	}
}

func runCheck(path string) {
	result := fetch(path)

	ok, _ := result["ok"].(bool)
	if ok {
		fmt.Println("Check PASSED")
	} else {
		fmt.Println("Check FAILED: drift detected")
	}
	fmt.Printf("Expected: %v\n", result["expected"])
	fmt.Printf("Actual: %v\n", result["actual"])
	fmt.Printf("Drift: %v\n", result["drift"])

	if !ok {
		os.Exit(1)
	}
}

// Package main provides the atscheck command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "atscheck",
	Short:         "ATS resume checker",
	Long:          "atscheck scores a resume against an industry keyword profile and audits its formatting for applicant tracking systems.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()
	// keep route registration noise out of the report on stdout
	gin.SetMode(gin.ReleaseMode)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

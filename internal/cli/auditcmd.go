package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arpegio/posonly/internal/audit"
)

var auditVerifyLog string

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	auditVerifyCmd.Flags().StringVar(&auditVerifyLog, "log", "", "Path to the JSONL enforcement trail (required)")
	auditVerifyCmd.MarkFlagRequired("log")
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the enforcement trail",
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate the trail's hash chain",
	RunE:  runAuditVerify,
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	result := audit.Verify(auditVerifyLog)
	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))

	if !result.Valid {
		cmd.SilenceUsage = true
		return fmt.Errorf("trail verification failed")
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kzkiosk/kiosk-control/internal/core/skucodec"
)

func newSkuCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "sku",
		Short: "Encode, validate and parse product codes",
		Long: `Works offline against the canonical code grammar:

  <PREFIX>.<model:3 digits>-<size:1-2 digits>.<fabric>.<color:2 digits>`,
	}
	cmd.PersistentFlags().StringVar(&prefix, "prefix", skucodec.DefaultPrefix, "Product family prefix")

	cmd.AddCommand(newSkuEncodeCmd(&prefix))
	cmd.AddCommand(newSkuValidateCmd(&prefix))
	cmd.AddCommand(newSkuParseCmd(&prefix))

	return cmd
}

func newSkuEncodeCmd(prefix *string) *cobra.Command {
	var (
		model, fabric, color string
		width                int
	)

	cmd := &cobra.Command{
		Use:     "encode",
		Short:   "Build the canonical code from its fields",
		Example: `  kioskctl sku encode --model 1 --width 160 --fabric VelutaLux --color 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := skucodec.New(*prefix)
			code, ok := codec.Encode(model, width, fabric, color)
			if !ok {
				return fmt.Errorf("every field is required")
			}
			if !codec.Validate(code) {
				return fmt.Errorf("%s does not match the canonical format", code)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), code)
			return err
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Model number")
	cmd.Flags().IntVar(&width, "width", 0, "Width in centimeters")
	cmd.Flags().StringVar(&fabric, "fabric", "", "Fabric code")
	cmd.Flags().StringVar(&color, "color", "", "Color number")

	return cmd
}

func newSkuValidateCmd(prefix *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate CODE...",
		Short: "Check codes against the canonical format",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := skucodec.New(*prefix)
			invalid := 0
			for _, code := range args {
				status := "ok"
				if !codec.Validate(code) {
					status = "invalid"
					invalid++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, status)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d codes are invalid", invalid, len(args))
			}
			return nil
		},
	}
}

func newSkuParseCmd(prefix *string) *cobra.Command {
	return &cobra.Command{
		Use:   "parse CODE",
		Short: "Print the structural parts of a code as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, ok := skucodec.New(*prefix).Parse(args[0])
			if !ok {
				return fmt.Errorf("%s does not match the canonical format", args[0])
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(parts); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

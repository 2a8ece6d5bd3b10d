package cmd

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/service"
	"github.com/kzkiosk/kiosk-control/internal/core/skucodec"
	"github.com/kzkiosk/kiosk-control/internal/infrastructure/config"
	"github.com/kzkiosk/kiosk-control/internal/infrastructure/kioskapi"
)

type catalogDump struct {
	Records    int                   `yaml:"records"`
	Unparsable int                   `yaml:"unparsable"`
	Groups     []domain.CatalogGroup `yaml:"groups,omitempty"`
	Matches    []domain.SkuRecord    `yaml:"matches,omitempty"`
}

func newCatalogCmd() *cobra.Command {
	var (
		apiURL  string
		prefix  string
		search  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the operator catalog grouped for display",
		Long: `Reads the operator catalog from the kiosk server and prints it as YAML,
grouped and ordered the way the kiosk shows it. With --search only the
matching active records are printed.`,
		Example: `  kioskctl catalog
  kioskctl catalog --search velutalux
  kioskctl catalog --api-url http://10.0.0.5:8000/api/kiosk`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if apiURL == "" || prefix == "" {
				cfg, err := config.Load(ctx)
				if err != nil {
					return err
				}
				if apiURL == "" {
					apiURL = cfg.Kiosk.APIBaseURL
				}
				if prefix == "" {
					prefix = cfg.Kiosk.SkuPrefix
				}
			}

			client := kioskapi.NewClient(apiURL, timeout, zerolog.Nop())
			records, err := client.SkuCatalog(ctx)
			if err != nil {
				return err
			}

			index := service.NewCatalogIndex(skucodec.New(prefix))
			index.Load(records)

			dump := catalogDump{Records: index.Len(), Unparsable: index.Unparsable()}
			if search != "" {
				dump.Matches = index.Search(search, false)
			} else {
				dump.Groups = index.GroupForDisplay()
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(dump); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "Kiosk API base URL (overrides KIOSK_API_BASE_URL)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Product family prefix (overrides KIOSK_SKU_PREFIX)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only print records matching this code or name fragment")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	return cmd
}

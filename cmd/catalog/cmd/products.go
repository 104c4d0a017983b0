package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"SunCatalog/pkg/catalogclient"
)

var productsCmd = &cobra.Command{
	Use:   "products [id]",
	Short: "List products of a running catalog, or show one by id",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProducts,
}

func init() {
	rootCmd.AddCommand(productsCmd)
	productsCmd.Flags().String("url", "http://localhost:3000", "Base URL of the catalog service")
	_ = viper.BindPFlag("CATALOG_URL", productsCmd.Flags().Lookup("url"))
}

func runProducts(cmd *cobra.Command, args []string) error {
	viper.AutomaticEnv()
	client := catalogclient.New(viper.GetString("CATALOG_URL"))

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	var products []catalogclient.Product
	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		p, err := client.Get(ctx, id)
		if err != nil {
			return err
		}
		products = append(products, p)
	} else {
		var err error
		if products, err = client.List(ctx); err != nil {
			return err
		}
	}

	return printProducts(cmd.OutOrStdout(), products)
}

func printProducts(w io.Writer, products []catalogclient.Product) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSPF\tPRICE\tIMAGE")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%g\t%s\t%s\n", p.ID, p.Name, p.SPF, p.Price, p.Image)
	}
	return tw.Flush()
}

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/relove-market/storefront/pkg/request"
)

func newSellCommand() *cobra.Command {
	sellCmd := &cobra.Command{
		Use:   "sell",
		Short: "Manage your own listings",
	}
	sellCmd.AddCommand(
		newListingsCommand(),
		newListCommand(),
		newUpdateListingCommand(),
		newUploadImagesCommand(),
		newTryOnCommand(),
	)
	return sellCmd
}

func newListingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "listings",
		Short: "Show your listings and their stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			products, err := application.client.SellerProducts(c)
			if err != nil {
				return fmt.Errorf("failed fetching listings with error=%w", err)
			}
			if len(products) == 0 {
				fmt.Println("no listings yet, create one with 'storefront sell list'")
				return nil
			}
			for _, product := range products {
				fmt.Printf("%d: %q %s [%s]\n",
					product.ID, product.Name,
					product.BasePrice.StringFixed(2), product.Status)
				for _, variant := range product.Variants {
					fmt.Printf("   size %-6s color %-12s stock %d\n",
						variant.Size, variant.Color, variant.StockQuantity)
				}
			}
			return nil
		},
	}
}

func newListCommand() *cobra.Command {
	var (
		name        string
		description string
		brand       string
		condition   string
		price       string
		categoryId  int64
		variants    []string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Create a new listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			basePrice, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("price must be a number")
			}
			listingVariants, err := parseVariants(variants)
			if err != nil {
				return err
			}
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			product, err := application.client.CreateListing(c, request.NewListing{
				Name:        name,
				Description: description,
				Brand:       brand,
				Condition:   condition,
				Variants:    listingVariants,
				BasePrice:   basePrice,
				CategoryID:  categoryId,
			})
			if err != nil {
				return fmt.Errorf("failed creating listing with error=%w", err)
			}
			fmt.Printf("created listing %d: %q\n", product.ID, product.Name)
			return nil
		},
	}
	listCmd.Flags().StringVar(&name, "name", "", "listing name")
	listCmd.Flags().StringVar(&description, "description", "", "listing description")
	listCmd.Flags().StringVar(&brand, "brand", "", "brand")
	listCmd.Flags().StringVar(&condition, "condition", "", "condition, e.g. LIKE_NEW")
	listCmd.Flags().StringVar(&price, "price", "", "base price")
	listCmd.Flags().Int64Var(&categoryId, "category", 0, "category id")
	listCmd.Flags().StringArrayVar(&variants, "variant", nil,
		"variant as size:color:stock, repeatable")
	_ = listCmd.MarkFlagRequired("name")
	_ = listCmd.MarkFlagRequired("condition")
	_ = listCmd.MarkFlagRequired("price")
	_ = listCmd.MarkFlagRequired("category")
	_ = listCmd.MarkFlagRequired("variant")
	return listCmd
}

func newUpdateListingCommand() *cobra.Command {
	var (
		status   string
		price    string
		variants []string
	)
	updateCmd := &cobra.Command{
		Use:   "update <productId>",
		Short: "Update an existing listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			productId, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("productId must be a number")
			}
			param := request.UpdateListing{Status: status}
			if price != "" {
				basePrice, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("price must be a number")
				}
				param.BasePrice = basePrice
			}
			if len(variants) > 0 {
				param.Variants, err = parseVariants(variants)
				if err != nil {
					return err
				}
			}
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			product, err := application.client.UpdateListing(c, productId, param)
			if err != nil {
				return fmt.Errorf("failed updating listing with error=%w", err)
			}
			fmt.Printf("updated listing %d: %q [%s]\n",
				product.ID, product.Name, product.Status)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&status, "status", "", "listing status")
	updateCmd.Flags().StringVar(&price, "price", "", "base price")
	updateCmd.Flags().StringArrayVar(&variants, "variant", nil,
		"variant as size:color:stock, repeatable")
	return updateCmd
}

func newUploadImagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <productId> <file>...",
		Short: "Attach image files to a listing",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			productId, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("productId must be a number")
			}
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			product, err := application.client.UploadListingImages(c, productId, args[1:])
			if err != nil {
				return fmt.Errorf("failed uploading images with error=%w", err)
			}
			fmt.Printf("listing %d now has %d image(s)\n", product.ID, len(product.Images))
			return nil
		},
	}
}

func newTryOnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tryon <personUri> <productUri>",
		Short: "Run the virtual try-on for a person photo and a product photo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			err = application.client.TryOn(c, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed starting try-on with error=%w", err)
			}
			fmt.Println("try-on started, the result lands in your gallery")
			return nil
		},
	}
}

// parseVariants parses repeated size:color:stock flags. Color may be
// empty: "M::3" is size M, no color, stock 3.
func parseVariants(raw []string) ([]request.ListingVariant, error) {
	variants := make([]request.ListingVariant, 0, len(raw))
	for _, entry := range raw {
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("variant %q must be size:color:stock", entry)
		}
		stock, err := strconv.Atoi(parts[2])
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("variant %q has an invalid stock count", entry)
		}
		variants = append(variants, request.ListingVariant{
			Size:          parts[0],
			Color:         parts[1],
			StockQuantity: stock,
		})
	}
	return variants, nil
}

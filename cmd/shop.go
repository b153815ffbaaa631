package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/relove-market/storefront/internal/cart"
	"github.com/relove-market/storefront/internal/catalog"
	"github.com/relove-market/storefront/internal/checkout"
	inErrors "github.com/relove-market/storefront/internal/errors"
	"github.com/relove-market/storefront/internal/log"
	"github.com/relove-market/storefront/internal/payment"
	"github.com/relove-market/storefront/pkg/response"
)

func newShopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "Browse the catalog and manage the cart interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShop(cmd.Context())
		},
	}
}

func runShop(c context.Context) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "runShop").
		Logger()
	c = logger.WithContext(c)

	application, err := newApp(c)
	if err != nil {
		return err
	}
	defer application.shutdown(c)

	fmt.Println("relove storefront. Type 'help' for commands.")
	if err := application.catalog.Refresh(c); err != nil {
		fmt.Printf("could not load the catalog: %s\n", userMessage(err))
	} else {
		printProducts(application.catalog)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		runShopCommand(c, application, scanner, fields)
	}
}

func runShopCommand(c context.Context, application *app, scanner *bufio.Scanner, fields []string) {
	switch fields[0] {
	case "help":
		printShopHelp()
	case "list":
		printProducts(application.catalog)
	case "search":
		text := strings.Join(fields[1:], " ")
		err := application.catalog.SetFilters(c, catalog.Update{SearchText: &text})
		reportCatalog(application.catalog, err)
	case "category":
		runCategoryCommand(c, application, fields[1:])
	case "price":
		runPriceCommand(c, application, fields[1:])
	case "more":
		err := application.catalog.LoadMore(c)
		reportCatalog(application.catalog, err)
	case "categories":
		categories, err := application.client.GetCategories(c)
		if err != nil {
			fmt.Println(userMessage(err))
			return
		}
		for _, category := range categories {
			printCategory(category, 0)
		}
	case "show":
		product, ok := productAt(application.catalog, fields[1:])
		if !ok {
			return
		}
		// The listing rows are sparse; fetch the full detail by id.
		detail, err := application.client.GetProduct(c, product.ID)
		if err != nil {
			fmt.Println(userMessage(err))
			return
		}
		printProductDetail(detail)
	case "add":
		runAddCommand(application, fields[1:])
	case "cart":
		printCart(application.cart)
	case "qty":
		runQtyCommand(application, fields[1:])
	case "rm":
		runRmCommand(application, fields[1:])
	case "checkout":
		runCheckoutCommand(c, application, scanner, fields[1:])
	default:
		fmt.Printf("unknown command %q, type 'help'\n", fields[0])
	}
}

func printShopHelp() {
	fmt.Println(`commands:
  list                         show the current product list
  search <text>                filter by search text (empty clears)
  category <id|clear>          filter by category
  price <min> <max> | clear    filter by price range
  more                         load the next page
  categories                   show the category tree
  show <n>                     product details for list entry n
  add <n> <size> [color]       add a variant to the cart
  cart                         show the cart
  qty <line> <quantity>        change a cart line's quantity
  rm <line>                    remove a cart line
  checkout <WALLET|COD|VNPAY>  place the order
  quit`)
}

func runCategoryCommand(c context.Context, application *app, args []string) {
	if len(args) == 0 {
		fmt.Println("usage: category <id|clear>")
		return
	}
	if args[0] == "clear" {
		err := application.catalog.SetFilters(c, catalog.Update{ClearCategory: true})
		reportCatalog(application.catalog, err)
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("category id must be a number")
		return
	}
	err = application.catalog.SetFilters(c, catalog.Update{CategoryID: &id})
	reportCatalog(application.catalog, err)
}

func runPriceCommand(c context.Context, application *app, args []string) {
	if len(args) == 1 && args[0] == "clear" {
		err := application.catalog.SetFilters(c, catalog.Update{ClearPrice: true})
		reportCatalog(application.catalog, err)
		return
	}
	if len(args) != 2 {
		fmt.Println("usage: price <min> <max> | price clear")
		return
	}
	minPrice, errMin := decimal.NewFromString(args[0])
	maxPrice, errMax := decimal.NewFromString(args[1])
	if errMin != nil || errMax != nil {
		fmt.Println("prices must be numbers")
		return
	}
	err := application.catalog.SetFilters(c, catalog.Update{
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})
	reportCatalog(application.catalog, err)
}

func runAddCommand(application *app, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: add <n> <size> [color]")
		return
	}
	product, ok := productAt(application.catalog, args[:1])
	if !ok {
		return
	}
	size := args[1]
	color := ""
	if len(args) > 2 {
		color = args[2]
	}
	variant, ok := product.Variant(size, color)
	if !ok {
		fmt.Printf("no variant %s/%s for %q\n", size, color, product.Name)
		return
	}
	err := application.cart.AddLine(cart.Item{
		Name:       product.Name,
		ImageUrl:   product.PrimaryImageUrl(),
		Size:       variant.Size,
		Color:      variant.Color,
		UnitPrice:  product.BasePrice,
		ProductID:  product.ID,
		VariantID:  variant.ID,
		StockLimit: variant.StockQuantity,
	})
	if err != nil {
		fmt.Println(userMessage(err))
		return
	}
	fmt.Printf("added %q %s/%s, cart has %d item(s)\n",
		product.Name, variant.Size, variant.Color, application.cart.Count())
}

func runQtyCommand(application *app, args []string) {
	line, quantity, ok := lineAndNumber(application.cart, args)
	if !ok {
		return
	}
	err := application.cart.SetQuantity(line.Key(), quantity)
	if err != nil {
		fmt.Println(userMessage(err))
		return
	}
	printCart(application.cart)
}

func runRmCommand(application *app, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: rm <line>")
		return
	}
	line, ok := lineAt(application.cart, args[0])
	if !ok {
		return
	}
	application.cart.RemoveLine(line.Key())
	printCart(application.cart)
}

func runCheckoutCommand(
	c context.Context,
	application *app,
	scanner *bufio.Scanner,
	args []string,
) {
	if len(args) != 1 {
		fmt.Println("usage: checkout <WALLET|COD|VNPAY>")
		return
	}
	method := strings.ToUpper(args[0])

	profile, err := application.client.Me(c)
	if err != nil {
		fmt.Printf("you need to be logged in to check out: %s\n", userMessage(err))
		return
	}

	params := checkoutParams(scanner, profile, method)
	order, err := application.checkout.Place(c, params)
	if err != nil {
		fmt.Println(userMessage(err))
		return
	}

	if order.PaymentUrl != "" {
		fmt.Printf("complete the payment in your browser:\n  %s\n", order.PaymentUrl)
		fmt.Println("waiting for the gateway to confirm...")
		result, err := payment.WaitForReturn(c, application.cfg.Payment)
		if err != nil {
			fmt.Printf("did not get a payment confirmation: %s\n", userMessage(err))
			return
		}
		if !result.Success {
			fmt.Printf("payment failed (gateway code %s), your cart is unchanged\n",
				result.ResponseCode)
			return
		}
		application.cart.Clear()
	}
	fmt.Printf("order #%d confirmed, status %s, total %s\n",
		order.OrderID, order.Status, order.TotalAmount.StringFixed(2))
}

// checkoutParams picks the default saved address when one exists and
// otherwise prompts for a one-time delivery address.
func checkoutParams(
	scanner *bufio.Scanner,
	profile response.UserProfile,
	method string,
) checkout.PlaceParams {
	params := checkout.PlaceParams{
		PaymentMethod: method,
		WalletBalance: profile.Balance,
	}
	if address, ok := profile.DefaultAddress(); ok {
		fmt.Printf("shipping to %s, %s (%s)\n",
			address.StreetAddress, address.City, address.FullName)
		params.AddressID = &address.ID
		return params
	}

	fmt.Println("no saved address, enter delivery details:")
	manual := checkout.ManualAddress{
		ReceiverName:  prompt(scanner, "receiver name"),
		ReceiverPhone: prompt(scanner, "receiver phone"),
		StreetAddress: prompt(scanner, "street address"),
		City:          prompt(scanner, "city"),
		PostalCode:    prompt(scanner, "postal code"),
	}
	params.Manual = &manual
	return params
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Printf("%s: ", label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func productAt(ctl *catalog.Controller, args []string) (response.Product, bool) {
	if len(args) != 1 {
		fmt.Println("expected a list entry number")
		return response.Product{}, false
	}
	n, err := strconv.Atoi(args[0])
	items := ctl.Items()
	if err != nil || n < 1 || n > len(items) {
		fmt.Printf("pick an entry between 1 and %d\n", len(items))
		return response.Product{}, false
	}
	return items[n-1], true
}

func lineAt(store *cart.Store, arg string) (cart.Line, bool) {
	n, err := strconv.Atoi(arg)
	lines := store.Lines()
	if err != nil || n < 1 || n > len(lines) {
		fmt.Printf("pick a cart line between 1 and %d\n", len(lines))
		return cart.Line{}, false
	}
	return lines[n-1], true
}

func lineAndNumber(store *cart.Store, args []string) (cart.Line, int, bool) {
	if len(args) != 2 {
		fmt.Println("usage: qty <line> <quantity>")
		return cart.Line{}, 0, false
	}
	line, ok := lineAt(store, args[0])
	if !ok {
		return cart.Line{}, 0, false
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("quantity must be a number")
		return cart.Line{}, 0, false
	}
	return line, quantity, true
}

func reportCatalog(ctl *catalog.Controller, err error) {
	if err != nil {
		fmt.Println(userMessage(err))
		return
	}
	printProducts(ctl)
}

func printProducts(ctl *catalog.Controller) {
	items := ctl.Items()
	if len(items) == 0 {
		fmt.Println("no products match")
		return
	}
	for i, product := range items {
		fmt.Printf("%3d. %-40q %10s  %s/%s\n",
			i+1, product.Name, product.BasePrice.StringFixed(2),
			product.Brand, product.Condition)
	}
	if ctl.HasMore() {
		fmt.Println("     (type 'more' for the next page)")
	}
}

func printProductDetail(product response.Product) {
	fmt.Printf("%s  %s\n", product.Name, product.BasePrice.StringFixed(2))
	fmt.Printf("  %s | %s | %s | sold by %s\n",
		product.Brand, product.Condition, product.CategoryName, product.SellerShopName)
	if product.Description != "" {
		fmt.Printf("  %s\n", product.Description)
	}
	for _, variant := range product.Variants {
		fmt.Printf("  size %-6s color %-12s stock %d\n",
			variant.Size, variant.Color, variant.StockQuantity)
	}
}

func printCategory(category response.Category, depth int) {
	fmt.Printf("%s%d: %s\n", strings.Repeat("  ", depth), category.ID, category.Name)
	for _, sub := range category.SubCategories {
		printCategory(sub, depth+1)
	}
}

func printCart(store *cart.Store) {
	lines := store.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for i, line := range lines {
		fmt.Printf("%3d. %-30q %s/%-10s x%d @ %s = %s\n",
			i+1, line.Name, line.Size, line.Color, line.Quantity,
			line.UnitPrice.StringFixed(2), line.LineTotal().StringFixed(2))
	}
	fmt.Printf("     %d item(s), subtotal %s\n",
		store.Count(), store.Subtotal().StringFixed(2))
}

// userMessage strips the wrapping noise and keeps what the user can act
// on: the backend's own message when there is one.
func userMessage(err error) string {
	apiErr := &inErrors.ApiError{}
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	switch {
	case errors.Is(err, inErrors.ErrStockExceeded):
		return "maximum stock reached"
	case errors.Is(err, inErrors.ErrInvalidQuantity):
		return "that quantity is not available"
	case errors.Is(err, inErrors.ErrNoMorePages):
		return "no more products"
	case errors.Is(err, inErrors.ErrFetchInFlight):
		return "still loading, try again"
	case errors.Is(err, inErrors.ErrEmptyCart):
		return "your cart is empty"
	case errors.Is(err, inErrors.ErrMissingAddress):
		return "please provide a shipping address"
	case errors.Is(err, inErrors.ErrInsufficientBalance):
		return "insufficient wallet balance"
	}
	return err.Error()
}

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"invdesk/internal/api"
	"invdesk/internal/config"
	"invdesk/internal/export"
	"invdesk/internal/fetchq"
	"invdesk/internal/filter"
	"invdesk/internal/ingest"
	"invdesk/internal/live"
	"invdesk/internal/models"
	"invdesk/internal/session"
	"invdesk/internal/views"
	"invdesk/internal/wizard"
)

// Console wires the API client, session, and view schemas behind the
// CLI commands. All filtering and wizard logic lives in the internal
// packages; this layer only parses flags and renders tables.
type Console struct {
	Client  *api.Client
	Store   *session.Store
	RefData *session.RefData
	Config  config.Config
}

// Run dispatches one command.
func (c *Console) Run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return c.login(ctx)
	case "products":
		return c.listProducts(ctx, args)
	case "transfers":
		return c.listTransfers(ctx, args)
	case "pos":
		return c.listPurchaseOrders(ctx, args)
	case "po-wizard":
		return c.runPOWizard(ctx)
	case "proforma-wizard":
		return c.runProformaWizard(ctx)
	case "upload":
		return c.runUpload(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// listFlags are the shared filter/sort/output flags on list commands.
type listFlags struct {
	search    string
	brand     string
	category  string
	status    string
	minPrice  float64
	maxPrice  float64
	sortField string
	desc      bool
	exportTo  string
	watch     bool
}

func parseListFlags(name string, args []string) (*listFlags, error) {
	lf := &listFlags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&lf.search, "search", "", "Free-text search")
	fs.StringVar(&lf.brand, "brand", "", "Brand filter (comma-separated for multiple)")
	fs.StringVar(&lf.category, "category", "", "Category filter")
	fs.StringVar(&lf.status, "status", "", "Status filter")
	fs.Float64Var(&lf.minPrice, "min-price", views.DefaultPriceDomain.Min, "Minimum price")
	fs.Float64Var(&lf.maxPrice, "max-price", views.DefaultPriceDomain.Max, "Maximum price")
	fs.StringVar(&lf.sortField, "sort", "", "Sort field")
	fs.BoolVar(&lf.desc, "desc", false, "Sort descending")
	fs.StringVar(&lf.exportTo, "export", "", "Write the view to a .csv or .xlsx file")
	fs.BoolVar(&lf.watch, "watch", false, "Keep the view live via the change feed")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return lf, nil
}

func (lf *listFlags) criteria() filter.Criteria {
	c := filter.Criteria{Search: lf.search}
	if lf.brand != "" {
		c = c.WithTerm("brand", strings.Split(lf.brand, ",")...)
	}
	if lf.category != "" {
		c = c.WithTerm("category", lf.category)
	}
	if lf.status != "" {
		c = c.WithTerm("status", lf.status)
	}
	return c
}

// priceCriteria adds the price range on top of the shared criteria. Only
// the product view has a price dimension.
func (lf *listFlags) priceCriteria() filter.Criteria {
	return lf.criteria().WithRange("price", lf.minPrice, lf.maxPrice)
}

func (lf *listFlags) sortSpec() *filter.SortSpec {
	if lf.sortField == "" {
		return nil
	}
	return &filter.SortSpec{Field: lf.sortField, Descending: lf.desc}
}

func (c *Console) login(ctx context.Context) error {
	in := bufio.NewScanner(os.Stdin)
	username := prompt(in, "username: ")
	password := prompt(in, "password: ")

	res, err := c.Client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	c.Store.SetToken(res.Token)
	fmt.Printf("logged in as %s (%s)\n", res.User.Username, res.User.Role)
	fmt.Println(res.Token)
	return nil
}

func (c *Console) listProducts(ctx context.Context, args []string) error {
	lf, err := parseListFlags("products", args)
	if err != nil {
		return err
	}

	render := func(products []models.Product) {
		view := filter.Apply(views.Products, products, lf.priceCriteria(), lf.sortSpec())
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SKU\tNAME\tBRAND\tCATEGORY\tPRICE\tQTY")
		for _, p := range view {
			price := "-"
			if p.Price != nil {
				price = p.Price.StringFixed(2)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n", p.SKU, p.Name, p.Brand, p.Category, price, p.Quantity)
		}
		w.Flush()
		fmt.Printf("%d of %d products\n", len(view), len(products))
	}

	products, err := c.Client.ListProducts(ctx)
	if err != nil {
		return err
	}

	if lf.exportTo != "" {
		view := filter.Apply(views.Products, products, lf.priceCriteria(), lf.sortSpec())
		headers, rows := export.ProductTable(view)
		return writeExport(lf.exportTo, "Products", headers, rows)
	}

	render(products)
	if lf.watch {
		return watchLoop(ctx, c, "product", c.Client.ListProducts, render)
	}
	return nil
}

func (c *Console) listTransfers(ctx context.Context, args []string) error {
	lf, err := parseListFlags("transfers", args)
	if err != nil {
		return err
	}

	render := func(transfers []models.StockTransfer) {
		view := filter.Apply(views.Transfers, transfers, lf.criteria(), lf.sortSpec())
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "REFERENCE\tSKU\tSOURCE\tDESTINATION\tSTATUS\tQTY")
		for _, t := range view {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n", t.Reference, t.SKU, t.Source, t.Destination, t.Status, t.Quantity)
		}
		w.Flush()
		fmt.Printf("%d of %d transfers\n", len(view), len(transfers))
	}

	transfers, err := c.Client.ListStockTransfers(ctx)
	if err != nil {
		return err
	}

	if lf.exportTo != "" {
		view := filter.Apply(views.Transfers, transfers, lf.criteria(), lf.sortSpec())
		headers, rows := export.TransferTable(view)
		return writeExport(lf.exportTo, "Transfers", headers, rows)
	}

	render(transfers)
	if lf.watch {
		return watchLoop(ctx, c, "transfer", c.Client.ListStockTransfers, render)
	}
	return nil
}

func (c *Console) listPurchaseOrders(ctx context.Context, args []string) error {
	lf, err := parseListFlags("pos", args)
	if err != nil {
		return err
	}

	render := func(pos []models.PurchaseOrder) {
		view := filter.Apply(views.PurchaseOrders, pos, lf.criteria(), lf.sortSpec())
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NUMBER\tSUPPLIER\tSTATUS\tTOTAL\tCREATED")
		for _, po := range view {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", po.Number, po.Supplier, po.Status, po.Total.StringFixed(2), po.CreatedAt)
		}
		w.Flush()
		fmt.Printf("%d of %d purchase orders\n", len(view), len(pos))
	}

	pos, err := c.Client.ListPurchaseOrders(ctx)
	if err != nil {
		return err
	}

	if lf.exportTo != "" {
		view := filter.Apply(views.PurchaseOrders, pos, lf.criteria(), lf.sortSpec())
		headers, rows := export.PurchaseOrderTable(view)
		return writeExport(lf.exportTo, "PurchaseOrders", headers, rows)
	}

	render(pos)
	if lf.watch {
		return watchLoop(ctx, c, "po", c.Client.ListPurchaseOrders, render)
	}
	return nil
}

// watch subscribes to the change feed and refetches the view whenever a
// matching resource changes. Rapid bursts collapse to the last fetch via
// fetchq; Ctrl-C tears everything down.
func watchLoop[T any](ctx context.Context, c *Console, resource string, fetch func(context.Context) ([]T, error), render func([]T)) error {
	q := fetchq.NewLatest[[]T]()
	defer q.Close()

	sub, err := live.Subscribe(ctx, c.Config.WSURL, c.Store.Token(), func(evt live.Event) {
		if !strings.HasPrefix(evt.Type, resource) {
			return
		}
		q.Start(ctx, fetch, func(items []T, err error) {
			if err != nil {
				fmt.Fprintln(os.Stderr, "refresh failed:", err)
				return
			}
			render(items)
		})
	})
	if err != nil {
		return fmt.Errorf("change feed unavailable: %w", err)
	}

	select {
	case <-ctx.Done():
		sub.Close()
		return nil
	case <-sub.Done():
		return fmt.Errorf("change feed closed")
	}
}

func (c *Console) runPOWizard(ctx context.Context) error {
	ctrl, err := wizard.NewPurchaseOrderFlow(c.Client, c.RefData)
	if err != nil {
		return err
	}
	fmt.Println("session", ctrl.ID())
	if err := ctrl.Enter(ctx); err != nil {
		return err
	}

	in := bufio.NewScanner(os.Stdin)
	draft := ctrl.Draft()

	// Step 1: supplier.
	for ctrl.Current() == wizard.StepSelectSupplier {
		fmt.Println("suppliers:")
		for _, s := range draft.SupplierChoices {
			fmt.Printf("  %s\t%s\n", s.ID, s.Name)
		}
		draft.SupplierID = prompt(in, "supplier id: ")
		if stepNext(ctx, ctrl) {
			break
		}
	}

	// Step 2: lines.
	for ctrl.Current() == wizard.StepOrderLines {
		for {
			sku := prompt(in, "line sku (blank to finish): ")
			if sku == "" {
				break
			}
			qty, _ := strconv.Atoi(prompt(in, "qty: "))
			price, err := decimal.NewFromString(prompt(in, "unit price: "))
			if err != nil {
				fmt.Println("invalid price")
				continue
			}
			draft.Lines = append(draft.Lines, models.POLine{SKU: sku, Qty: qty, UnitPrice: price})
		}
		draft.ExpectedAt = prompt(in, "expected date (YYYY-MM-DD, optional): ")
		draft.Notes = prompt(in, "notes (optional): ")
		if stepNext(ctx, ctrl) {
			break
		}
	}

	// Step 3: confirm and submit.
	fmt.Printf("order total: %s\n", draft.Total().StringFixed(2))
	if strings.ToLower(prompt(in, "submit? [y/N]: ")) != "y" {
		ctrl.Cancel()
		fmt.Println("cancelled")
		return nil
	}
	return submitLoop(ctx, ctrl, in)
}

func (c *Console) runProformaWizard(ctx context.Context) error {
	ctrl, err := wizard.NewProformaFlow(c.Client, c.RefData)
	if err != nil {
		return err
	}
	fmt.Println("session", ctrl.ID())
	if err := ctrl.Enter(ctx); err != nil {
		return err
	}

	in := bufio.NewScanner(os.Stdin)
	draft := ctrl.Draft()

	for ctrl.Current() == wizard.StepSelectCustomer {
		fmt.Println("customers:")
		for _, cu := range draft.CustomerChoices {
			fmt.Printf("  %s\t%s\n", cu.ID, cu.Name)
		}
		draft.CustomerID = prompt(in, "customer id: ")
		if stepNext(ctx, ctrl) {
			break
		}
	}

	for ctrl.Current() == wizard.StepInvoiceLines {
		for {
			sku := prompt(in, "line sku (blank to finish): ")
			if sku == "" {
				break
			}
			qty, _ := strconv.Atoi(prompt(in, "qty: "))
			price, err := decimal.NewFromString(prompt(in, "unit price: "))
			if err != nil {
				fmt.Println("invalid price")
				continue
			}
			draft.Lines = append(draft.Lines, models.POLine{SKU: sku, Qty: qty, UnitPrice: price})
		}
		if stepNext(ctx, ctrl) {
			break
		}
	}

	for ctrl.Current() == wizard.StepInvoiceTerms {
		draft.Terms = prompt(in, "terms (optional): ")
		draft.ValidUntil = prompt(in, "valid until (YYYY-MM-DD, optional): ")
		if stepNext(ctx, ctrl) {
			break
		}
	}

	fmt.Printf("invoice total: %s\n", draft.Total().StringFixed(2))
	if strings.ToLower(prompt(in, "submit? [y/N]: ")) != "y" {
		ctrl.Cancel()
		fmt.Println("cancelled")
		return nil
	}
	return submitLoop(ctx, ctrl, in)
}

func (c *Console) runUpload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: upload <file.csv|.xlsx>")
	}
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}

	result, err := ingest.ParseProducts(filepath.Base(path), f)
	if err != nil {
		return err
	}

	ctrl, err := wizard.NewProductUploadFlow(c.Client)
	if err != nil {
		return err
	}
	fmt.Println("session", ctrl.ID())
	draft := ctrl.Draft()
	draft.Method = wizard.MethodUpload
	draft.AttachSpreadsheet(filepath.Base(path), info.Size(), result)

	// select_method -> upload_file -> review -> confirm
	for !ctrl.AtTerminal() {
		if ve, err := ctrl.Next(ctx); err != nil {
			return err
		} else if ve.HasErrors() {
			return ve
		}
	}

	fmt.Printf("%d rows parsed, %d skipped\n", draft.RowCount, len(draft.Skipped))
	for _, skip := range draft.Skipped {
		fmt.Printf("  row %d: %s\n", skip.Row, skip.Message)
	}

	in := bufio.NewScanner(os.Stdin)
	if strings.ToLower(prompt(in, fmt.Sprintf("upload %d products? [y/N]: ", len(draft.Rows)))) != "y" {
		ctrl.Cancel()
		fmt.Println("cancelled")
		return nil
	}
	return submitLoop(ctx, ctrl, in)
}

// stepNext advances the wizard, echoing validation failures inline.
// Returns true when the transition happened.
func stepNext[D any](ctx context.Context, ctrl *wizard.Controller[D]) bool {
	ve, err := ctrl.Next(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return false
	}
	if ve.HasErrors() {
		for _, e := range ve.Errors {
			fmt.Printf("  %s %s\n", e.Field, e.Message)
		}
		return false
	}
	return true
}

// submitLoop submits from the terminal step, offering retry on failure
// with the draft intact.
func submitLoop[D any](ctx context.Context, ctrl *wizard.Controller[D], in *bufio.Scanner) error {
	for {
		result, err := ctrl.Submit(ctx)
		if err == nil {
			if result.EntityID != "" {
				fmt.Println("created:", result.EntityID)
			} else {
				fmt.Println("created")
			}
			return nil
		}
		fmt.Fprintln(os.Stderr, "submit failed:", err)
		if strings.ToLower(prompt(in, "retry? [y/N]: ")) != "y" {
			return nil
		}
	}
}

func writeExport(path, sheet string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		err = export.WriteExcel(f, sheet, headers, rows)
	default:
		err = export.WriteCSV(f, headers, rows)
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d rows to %s\n", len(rows), path)
	return nil
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

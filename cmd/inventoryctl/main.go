package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Thabana01/wings-cafe-Inventory/config"
	"github.com/Thabana01/wings-cafe-Inventory/internal/broker"
	"github.com/Thabana01/wings-cafe-Inventory/internal/client"
	"github.com/Thabana01/wings-cafe-Inventory/internal/inventory"
	"github.com/Thabana01/wings-cafe-Inventory/internal/models"
	"github.com/Thabana01/wings-cafe-Inventory/internal/redisclient"
	"github.com/Thabana01/wings-cafe-Inventory/internal/util"
)

const usage = `Usage: inventoryctl <command> [flags]

Commands:
  products        list products
  add-product     -name -category -description -price -quantity [-image]
  update-product  -id -name -category -description -price -quantity [-image]
  delete-product  -id
  sales           list sales
  record-sale     -product -quantity
  cancel-sale     -id
  adjust-stock    -product -type add|deduct -quantity
  customers       list customers
  add-customer    -name -email [-phone]
  update-customer -id -name -email [-phone]
  delete-customer -id
  low-stock       list products at or under the low-stock threshold
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	api := client.New(cfg.Client.APIBaseURL, time.Duration(cfg.Client.TimeoutSeconds)*time.Second)
	state := inventory.NewState(api)

	var events broker.Publisher = broker.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents)
		defer producer.Close()
		events = broker.NewEventPublisher(producer)
	}

	var idem inventory.IdempotencyRegistry = inventory.NewMemoryRegistry()
	if cfg.Redis.Addr != "" {
		redis, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redis.Close()
		idem = redis
	}

	svc := inventory.NewService(api, state, events, idem)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc.RefreshAll(ctx)

	if err := run(ctx, svc, cfg, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, svc *inventory.Service, cfg *config.Config, command string, args []string) error {
	switch command {
	case "products":
		for _, p := range svc.State().Products() {
			printProduct(p, cfg)
		}
		return nil

	case "add-product":
		product, _, err := productFlags(command, args)
		if err != nil {
			return err
		}
		return svc.AddProduct(ctx, product)

	case "update-product":
		product, id, err := productFlags(command, args)
		if err != nil {
			return err
		}
		product.ID = id
		// Full overwrite: carry the existing ledger forward so the update
		// does not wipe the transaction history.
		if existing, ok := svc.State().FindProduct(id); ok {
			product.Transactions = existing.Transactions
		}
		return svc.UpdateProduct(ctx, id, product)

	case "delete-product":
		id, err := idFlag(command, args)
		if err != nil {
			return err
		}
		return svc.DeleteProduct(ctx, id)

	case "sales":
		for _, sale := range svc.State().Sales() {
			fmt.Printf("#%d product=%d qty=%d status=%s date=%s\n",
				sale.ID, sale.ProductID, sale.Quantity, sale.Status, sale.Date.Format(time.RFC3339))
		}
		return nil

	case "record-sale":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		productID := fs.Int64("product", 0, "product id")
		quantity := fs.Int("quantity", 0, "units to sell")
		if err := fs.Parse(args); err != nil {
			return err
		}
		result, err := svc.RecordSale(ctx, inventory.RecordSaleRequest{
			ProductID: *productID,
			Quantity:  *quantity,
		})
		if err != nil {
			return err
		}
		if result.Duplicate {
			fmt.Println("Sale already recorded")
			return nil
		}
		fmt.Printf("Sale of %d unit(s) completed, %d remaining\n", result.QuantitySold, result.Remaining)
		return nil

	case "cancel-sale":
		id, err := idFlag(command, args)
		if err != nil {
			return err
		}
		return svc.DeleteSale(ctx, id)

	case "adjust-stock":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		productID := fs.Int64("product", 0, "product id")
		adjustType := fs.String("type", models.TransactionTypeAdd, "add or deduct")
		quantity := fs.Int("quantity", 0, "units to adjust")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return svc.UpdateStock(ctx, inventory.StockUpdateRequest{
			ProductID: *productID,
			Type:      *adjustType,
			Quantity:  *quantity,
		})

	case "customers":
		for _, c := range svc.State().Customers() {
			fmt.Printf("#%d %s <%s> %s\n", c.ID, c.Name, c.Email, c.Phone)
		}
		return nil

	case "add-customer":
		customer, _, err := customerFlags(command, args)
		if err != nil {
			return err
		}
		return svc.AddCustomer(ctx, customer)

	case "update-customer":
		customer, id, err := customerFlags(command, args)
		if err != nil {
			return err
		}
		customer.ID = id
		return svc.UpdateCustomer(ctx, id, customer)

	case "delete-customer":
		id, err := idFlag(command, args)
		if err != nil {
			return err
		}
		return svc.DeleteCustomer(ctx, id)

	case "low-stock":
		for _, p := range svc.State().LowStockProducts(cfg.Inventory.LowStockThreshold) {
			printProduct(p, cfg)
		}
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printProduct(p models.Product, cfg *config.Config) {
	marker := ""
	if models.LowStock(p.Quantity, cfg.Inventory.LowStockThreshold) {
		marker = " [LOW STOCK]"
	}
	fmt.Printf("#%d %s (%s) price=%s qty=%d%s\n",
		p.ID, p.Name, p.Category, models.FormatCurrency(p.Price), p.Quantity, marker)
	fmt.Printf("    image: %s\n", p.ImageURL(cfg.Client.AssetBaseURL))
}

func productFlags(command string, args []string) (models.Product, int64, error) {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	id := fs.Int64("id", 0, "product id")
	name := fs.String("name", "", "product name")
	category := fs.String("category", "", "product category")
	description := fs.String("description", "", "product description")
	price := fs.Float64("price", 0, "unit price")
	quantity := fs.Int("quantity", 0, "stock quantity")
	image := fs.String("image", "", "image asset name")
	if err := fs.Parse(args); err != nil {
		return models.Product{}, 0, err
	}
	return models.Product{
		Name:        *name,
		Category:    *category,
		Description: *description,
		Price:       *price,
		Quantity:    *quantity,
		Image:       *image,
	}, *id, nil
}

func customerFlags(command string, args []string) (models.Customer, int64, error) {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	id := fs.Int64("id", 0, "customer id")
	name := fs.String("name", "", "customer name")
	email := fs.String("email", "", "customer email")
	phone := fs.String("phone", "", "customer phone")
	if err := fs.Parse(args); err != nil {
		return models.Customer{}, 0, err
	}
	return models.Customer{Name: *name, Email: *email, Phone: *phone}, *id, nil
}

func idFlag(command string, args []string) (int64, error) {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	id := fs.Int64("id", 0, "record id")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	return *id, nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Gunvolt24/storefront/config"
	"github.com/Gunvolt24/storefront/internal/app"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/internal/view"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

const usage = `usage: cartctl <command> [args]

catalog:
  products [-category NAME]   list products, optionally of one category
  trending [-n N]             top rated products
  categories [-active NAME]   category bar
  show ID                     product details
  validate [FILE]             validate product JSON (object or array; stdin when FILE is omitted)

cart:
  cart                        show cart
  add ID                      add product to cart
  remove ID                   remove product from cart
  clear                       empty cart
`

// Коды выхода.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

// run — разбор команды и исполнение; возвращает код выхода.
func run(ctx context.Context, cfg *config.Config, log ports.Logger, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "products", "trending", "categories", "show":
		err = runCatalog(ctx, app.NewCatalog(cfg, log), cmd, rest, stdout, stderr)
	case "cart", "add", "remove", "clear":
		err = runCart(ctx, cfg, log, cmd, rest, stdout)
	case "validate":
		err = runValidate(ctx, rest, os.Stdin, stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		fmt.Fprint(stderr, usage)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "%s: %v\n", cmd, err)
		return exitError
	}
}

func runCatalog(ctx context.Context, catalog *usecase.CatalogService, cmd string, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	category := fs.String("category", usecase.AllCategories, "category filter")
	n := fs.Int("n", usecase.DefaultTrendingCount, "number of products")
	active := fs.String("active", usecase.AllCategories, "active category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd {
	case "products":
		list, err := catalog.ByCategory(ctx, *category)
		if err != nil {
			return err
		}
		return view.WriteCards(stdout, view.Cards(list))

	case "trending":
		list, err := catalog.Trending(ctx, *n)
		if err != nil {
			return err
		}
		return view.WriteCards(stdout, view.Cards(list))

	case "categories":
		cats, err := catalog.Categories(ctx)
		if err != nil {
			return err
		}
		return view.WriteCategoryBar(stdout, view.CategoryBar(cats, *active))

	default: // show
		id, err := productID(fs.Args())
		if err != nil {
			return err
		}
		p, err := catalog.Product(ctx, id)
		if err != nil {
			return err
		}
		return view.WriteDetails(stdout, view.Details(*p))
	}
}

func runCart(ctx context.Context, cfg *config.Config, log ports.Logger, cmd string, args []string, stdout io.Writer) error {
	var id int
	if cmd == "add" || cmd == "remove" {
		var err error
		if id, err = productID(args); err != nil {
			return err
		}
	}

	storage, closeStorage, err := app.OpenCartStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStorage()

	cart := usecase.NewCartStore(storage, app.NewCatalog(cfg, log), log)
	panel := view.NewBinder()
	cart.Subscribe(panel)

	if cfg.Kafka.Enabled {
		publisher := app.NewCartEventPublisher(cfg, log)
		cart.Subscribe(publisher)

		pubCtx, stopPublisher := context.WithCancel(context.WithoutCancel(ctx))
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = publisher.Run(pubCtx)
		}()
		// Run дописывает очередь при отмене
		defer func() {
			stopPublisher()
			<-done
			_ = publisher.Close()
		}()
	}

	cart.Load(ctx)

	switch cmd {
	case "add":
		err = cart.AddItem(ctx, id)
	case "remove":
		err = cart.RemoveItem(ctx, id)
	case "clear":
		err = cart.Clear(ctx)
	}
	if err != nil {
		return err
	}

	return view.WritePanel(stdout, panel.Current())
}

// runValidate — проверка карточек товаров тем же валидатором, что у консьюмера Kafka.
func runValidate(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) > 1 {
		return errUsage
	}

	var (
		raw []byte
		err error
	)
	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
	} else {
		raw, err = io.ReadAll(stdin)
	}
	if err != nil {
		return err
	}

	items := []json.RawMessage{raw}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("%w: %v", validate.ErrInvalidProduct, err)
		}
	}

	validator := validate.NewProductValidator()
	invalid := 0
	for i, item := range items {
		p, vErr := validate.ProductFromJSON(ctx, validator, item)
		if vErr != nil {
			invalid++
			fmt.Fprintf(stdout, "#%d invalid: %v\n", i, vErr)
			continue
		}
		fmt.Fprintf(stdout, "#%d ok id=%d\n", i, p.ID)
	}

	fmt.Fprintf(stdout, "total=%d valid=%d invalid=%d\n", len(items), len(items)-invalid, invalid)
	if invalid > 0 {
		return fmt.Errorf("%d invalid product(s)", invalid)
	}
	return nil
}

func productID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", args[0])
	}
	return id, nil
}

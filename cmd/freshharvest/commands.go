package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/polkiloo/freshharvest/internal/app"
	"github.com/polkiloo/freshharvest/internal/config"
	"github.com/polkiloo/freshharvest/internal/domain/model"
	pkgAuth "github.com/polkiloo/freshharvest/internal/pkg/auth"
	"github.com/polkiloo/freshharvest/internal/usecase"
)

const (
	flagToken      = "token"
	flagRole       = "role"
	flagUsername   = "username"
	flagPassword   = "password"
	flagItem       = "item"
	flagBox        = "box"
	flagDelivery   = "delivery"
	flagPay        = "pay"
	flagCardNumber = "card-number"
	flagCardType   = "card-type"
	flagExpiry     = "expiry"
	flagCVV        = "cvv"
	flagHolder     = "holder"
	flagBank       = "bank"
	flagAmount     = "amount"
	flagOrder      = "order"
	flagCustomer   = "customer"
	flagKind       = "kind"
	flagMode       = "mode"
	flagBoxes      = "boxes"
	flagReload     = "reload"
	flagFrom       = "from"
	flagTo         = "to"
	flagFile       = "file"
)

func newApp(rt *runtime) *cli.App {
	commands := []*cli.Command{
		seedCommand(rt),
		loginCommand(rt),
		catalogCommand(rt),
		quoteCommand(rt),
		checkoutCommand(rt),
		balanceCommand(rt),
		payCommand(rt),
		fulfillCommand(rt),
		ordersCommand(rt),
		customersCommand(rt),
		historyCommand(rt),
		reportCommand(rt),
	}
	if !rt.persistent {
		commands = append(commands, shellCommand(rt))
	}
	return &cli.App{
		Name:                      "freshharvest",
		Usage:                     "produce storefront: pricing, checkout, accounts and reports",
		Flags:                     config.Flags(),
		Commands:                  commands,
		Writer:                    rt.out,
		DisableSliceFlagSeparator: true,
	}
}

func tokenFlag() cli.Flag {
	return &cli.StringFlag{Name: flagToken, EnvVars: []string{"FRESHHARVEST_TOKEN"}, Usage: "session token printed by login"}
}

func cartFlags() []cli.Flag {
	return []cli.Flag{
		tokenFlag(),
		&cli.StringSliceFlag{Name: flagItem, Aliases: []string{"i"}, Usage: "[type:]name=quantity[@price], repeatable"},
		&cli.StringSliceFlag{Name: flagBox, Aliases: []string{"b"}, Usage: "size=quantity[:item,item,...], repeatable"},
		&cli.StringFlag{Name: flagDelivery, Value: string(model.DeliveryPickup), Usage: "pickup or delivery"},
	}
}

func cardFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagCardNumber, Usage: "16 digit card number"},
		&cli.StringFlag{Name: flagCardType, Usage: "VISA, MasterCard or American Express"},
		&cli.StringFlag{Name: flagExpiry, Usage: "credit card expiry as MM/YYYY"},
		&cli.StringFlag{Name: flagCVV, Usage: "credit card security code"},
		&cli.StringFlag{Name: flagHolder, Usage: "credit card holder name"},
		&cli.StringFlag{Name: flagBank, Usage: "debit card bank name"},
	}
}

func seedCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "import staff and customer accounts from a YAML file",
		Flags: []cli.Flag{&cli.StringFlag{Name: flagFile, Usage: "seed file, defaults to --seed-file"}},
		Action: rt.action(func(c *cli.Context, sf *app.Storefront) error {
			path := c.String(flagFile)
			if path == "" {
				path = c.String("seed-file")
			}
			result, err := sf.Seed(c.Context, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "imported %d staff and %d customers\n", result.Staff, result.Customers)
			return nil
		}),
	}
}

func loginCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "authenticate and print a session token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagRole, Value: string(pkgAuth.RoleCustomer), Usage: "staff or customer"},
			&cli.StringFlag{Name: flagUsername, Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: flagPassword, Aliases: []string{"p"}, EnvVars: []string{"FRESHHARVEST_PASSWORD"}, Required: true},
		},
		Action: rt.action(func(c *cli.Context, sf *app.Storefront) error {
			role := pkgAuth.Role(strings.ToLower(c.String(flagRole)))
			identity, err := sf.Login(c.Context, role, c.String(flagUsername), c.String(flagPassword))
			if err != nil {
				return err
			}
			if rt.persistent {
				rt.token = identity.Token
				fmt.Fprintf(rt.out, "welcome %s (%s %s)\n", identity.Name, identity.Session.Role, identity.Session.Subject)
				return nil
			}
			fmt.Fprintln(rt.out, identity.Token)
			return nil
		}),
	}
}

func catalogCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "list vegetables and premade boxes with prices",
		Flags: []cli.Flag{
			tokenFlag(),
			&cli.StringFlag{Name: flagMode, Usage: "only list weight, unit or pack items"},
			&cli.BoolFlag{Name: flagBoxes, Value: true, Usage: "include premade boxes"},
			&cli.BoolFlag{Name: flagReload, Usage: "re-read the price files first (staff)"},
		},
		Action: rt.action(func(c *cli.Context, sf *app.Storefront) error {
			cat := sf.Catalog()
			if c.Bool(flagReload) {
				var err error
				if cat, err = sf.ReloadCatalog(rt.tokenFrom(c)); err != nil {
					return err
				}
			}
			mode := model.SalesMode(strings.ToLower(c.String(flagMode)))
			switch mode {
			case "", model.SalesModeWeight, model.SalesModeUnit, model.SalesModePack:
			default:
				return fmt.Errorf("unknown sales mode %q", mode)
			}
			printCatalog(rt.out, cat, mode, c.Bool(flagBoxes) && mode == "")
			return nil
		}),
	}
}

func quoteCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "price a cart without placing the order",
		Flags: cartFlags(),
		Action: rt.action(func(c *cli.Context, sf *app.Storefront) error {
			cart, err := cartFromFlags(c)
			if err != nil {
				return err
			}
			order, err := sf.Quote(c.Context, rt.tokenFrom(c), cart)
			if err != nil {
				return err
			}
			printOrder(rt.out, order)
			return nil
		}),
	}
}

func checkoutCommand(rt *runtime) *cli.Command {
	flags := append(cartFlags(), &cli.StringFlag{Name: flagPay, Value: string(model.PaymentAccount), Usage: "account, credit or debit"})
	return &cli.Command{
		Name:  "checkout",
		Usage: "place an order",
		Flags: append(flags, cardFlags()...),
		Action: rt.action(func(c *cli.Context, sf *app.Storefront) error {
			cart, err := cartFromFlags(c)
			if err != nil {
				return err
			}
			method, credit, debit, err := paymentFromFlags(c)
			if err != nil {
				return err
			}
			result, err := sf.Checkout(c.Context, rt.tokenFrom(c), usecase.CheckoutRequest{
				Cart:   cart,
				Method: method,
				Credit: credit,
				Debit:  debit,
			})
			if err != nil {
				return err
			}
			printOrder(rt.out, result.Order)
			if result.Payment != nil {
				fmt.Fprintf(rt.out, "paid %s by %s\n", model.FormatMoney(result.Payment.Amount), result.Payment.Description())
			}
			return nil
		}),
	}
}

func balanceCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "balance",
		Usage: "show the account balance and credit limit",
		Flags: []cli.Flag{tokenFlag()},
		Action: rt.action(func(c *cli.Context, sf *app.Storefront) error {
			customer, err := sf.Balance(c.Context, rt.tokenFrom(c))
			if err != nil {
				return err
			}
			printBalance(rt.out, customer)
			return nil
		}),
	}
}

func payCommand(rt *runtime) *cli.Command {
	flags := []cli.Flag{
		tokenFlag(),
		&cli.StringFlag{Name: flagAmount, Required: true, Usage: "amount to pay off"},
		&cli.StringFlag{Name: flagPay, Value: "credit", Usage: "credit or debit"},
	}
	return &cli.Command{
		Name:  "pay",
		Usage: "pay down the account balance by card",
		Flags: append(flags, cardFlags()...),
		Action: rt.action(func(c *cli.Context, sf *app.Storefront) error {
			amount, err := model.ParseMoney(c.String(flagAmount))
			if err != nil {
				return fmt.Errorf("bad amount: %w", err)
			}
			method, credit, debit, err := paymentFromFlags(c)
			if err != nil {
				return err
			}
			payment, customer, err := sf.PayBalance(c.Context, rt.tokenFrom(c), usecase.SettlementRequest{
				Amount: amount,
				Method: method,
				Credit: credit,
				Debit:  debit,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "payment %s of %s recorded\n", payment.ID, model.FormatMoney(payment.Amount))
			printBalance(rt.out, customer)
			return nil
		}),
	}
}

func fulfillCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "fulfill",
		Usage: "mark a pending order as fulfilled (staff)",
		Flags: []cli.Flag{tokenFlag(), &cli.StringFlag{Name: flagOrder, Required: true}},
		Action: rt.action(func(c *cli.Context, sf *app.Storefront) error {
			order, err := sf.Fulfill(c.Context, rt.tokenFrom(c), c.String(flagOrder))
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "order %s fulfilled\n", order.Number)
			return nil
		}),
	}
}

func ordersCommand(rt *runtime) *cli.Command {
	flags := func() []cli.Flag {
		return []cli.Flag{tokenFlag(), &cli.StringFlag{Name: flagCustomer, Usage: "customer id (staff)"}}
	}
	list := func(fetch func(*app.Storefront, *cli.Context) (model.OrderList, error)) cli.ActionFunc {
		return rt.action(func(c *cli.Context, sf *app.Storefront) error {
			orders, err := fetch(sf, c)
			if err != nil {
				return err
			}
			printOrderList(rt.out, orders)
			return nil
		})
	}
	return &cli.Command{
		Name:  "orders",
		Usage: "list current or previous orders",
		Subcommands: []*cli.Command{
			{
				Name:  "current",
				Usage: "pending orders",
				Flags: flags(),
				Action: list(func(sf *app.Storefront, c *cli.Context) (model.OrderList, error) {
					return sf.CurrentOrders(c.Context, rt.tokenFrom(c), c.String(flagCustomer))
				}),
			},
			{
				Name:  "previous",
				Usage: "fulfilled orders",
				Flags: flags(),
				Action: list(func(sf *app.Storefront, c *cli.Context) (model.OrderList, error) {
					return sf.PreviousOrders(c.Context, rt.tokenFrom(c), c.String(flagCustomer))
				}),
			},
		},
	}
}

func customersCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "customers",
		Usage: "list customer accounts (staff)",
		Flags: []cli.Flag{tokenFlag(), &cli.StringFlag{Name: flagKind, Usage: "private or corporate"}},
		Action: rt.action(func(c *cli.Context, sf *app.Storefront) error {
			customers, err := sf.Customers(c.Context, rt.tokenFrom(c), model.CustomerKind(strings.ToLower(c.String(flagKind))))
			if err != nil {
				return err
			}
			printCustomers(rt.out, customers)
			return nil
		}),
	}
}

func historyCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "orders and payments of a customer",
		Flags: []cli.Flag{tokenFlag(), &cli.StringFlag{Name: flagCustomer, Usage: "customer id (staff)"}},
		Action: rt.action(func(c *cli.Context, sf *app.Storefront) error {
			history, err := sf.CustomerHistory(c.Context, rt.tokenFrom(c), c.String(flagCustomer))
			if err != nil {
				return err
			}
			printHistory(rt.out, history)
			return nil
		}),
	}
}

func reportCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "staff reports",
		Subcommands: []*cli.Command{
			{
				Name:  "sales",
				Usage: "sales between two days, both included",
				Flags: []cli.Flag{
					tokenFlag(),
					&cli.StringFlag{Name: flagFrom, Usage: "first day as " + dateLayout + ", defaults to today"},
					&cli.StringFlag{Name: flagTo, Usage: "last day as " + dateLayout + ", defaults to today"},
				},
				Action: rt.action(func(c *cli.Context, sf *app.Storefront) error {
					from, err := parseDay(c.String(flagFrom))
					if err != nil {
						return err
					}
					to, err := parseDay(c.String(flagTo))
					if err != nil {
						return err
					}
					report, err := sf.SalesReport(c.Context, rt.tokenFrom(c), from, to)
					if err != nil {
						return err
					}
					printSalesReport(rt.out, report)
					return nil
				}),
			},
			{
				Name:  "popular",
				Usage: "items ranked by quantity sold",
				Flags: []cli.Flag{tokenFlag()},
				Action: rt.action(func(c *cli.Context, sf *app.Storefront) error {
					popular, err := sf.PopularItems(c.Context, rt.tokenFrom(c))
					if err != nil {
						return err
					}
					printPopular(rt.out, popular)
					return nil
				}),
			},
		},
	}
}

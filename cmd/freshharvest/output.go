package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/polkiloo/freshharvest/internal/domain/model"
)

const dateLayout = "2006-01-02"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printCatalog(w io.Writer, cat *model.Catalog, mode model.SalesMode, boxes bool) {
	modes := model.SalesModes
	if mode != "" {
		modes = []model.SalesMode{mode}
	}
	for _, m := range modes {
		fmt.Fprintf(w, "[sold by %s]\n", m)
		for _, line := range cat.ListingByMode(m) {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	if !boxes {
		return
	}
	fmt.Fprintln(w, "[premade boxes]")
	for _, size := range model.BoxSizes {
		if box, ok := cat.Box(size); ok {
			fmt.Fprintf(w, "  %s\n", box)
		}
	}
}

func printOrder(w io.Writer, order *model.Order) {
	tw := newTable(w)
	if order.Number != "" {
		fmt.Fprintf(tw, "Order:\t%s\n", order.Number)
	}
	fmt.Fprintf(tw, "Customer:\t%s (%s)\n", order.CustomerName, order.CustomerID)
	fmt.Fprintf(tw, "Date:\t%s\n", order.Date.Format(dateLayout))
	fmt.Fprintf(tw, "Delivery:\t%s\n", order.DeliveryMethod)
	if order.Status != "" {
		fmt.Fprintf(tw, "Status:\t%s\n", order.Status)
	}
	for _, item := range order.Items {
		fmt.Fprintf(tw, "\t%s\n", item)
	}
	fmt.Fprintf(tw, "Subtotal:\t%s\n", model.FormatMoney(order.Subtotal))
	if order.IsCorporate() {
		fmt.Fprintf(tw, "Discount (%s%%):\t%s\n", order.DiscountRate.Shift(2).String(), model.FormatMoney(order.Discount))
	}
	fmt.Fprintf(tw, "Delivery fee:\t%s\n", model.FormatMoney(order.DeliveryFee))
	fmt.Fprintf(tw, "Total:\t%s\n", model.FormatMoney(order.TotalAmount))
	tw.Flush()
}

func printOrderList(w io.Writer, list model.OrderList) {
	if list.Error != "" {
		fmt.Fprintf(w, "error: %s\n", list.Error)
		return
	}
	if len(list.Orders) == 0 {
		fmt.Fprintln(w, "no orders")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "NUMBER\tCUSTOMER\tDATE\tSTATUS\tTOTAL\tITEMS")
	for _, o := range list.Orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", o.Number, o.CustomerName, o.Date.Format(dateLayout),
			o.Status, model.FormatMoney(o.Total), o.Items)
	}
	tw.Flush()
}

func printSalesReport(w io.Writer, report model.SalesReport) {
	if report.Error != "" {
		fmt.Fprintf(w, "error: %s\n", report.Error)
		return
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "Sales from %s to %s\n", report.Start.Format(dateLayout), report.End.Format(dateLayout))
	fmt.Fprintln(tw, "NUMBER\tCUSTOMER\tDATE\tSUBTOTAL\tDISCOUNT\tSALES")
	for _, l := range report.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", l.Number, l.CustomerName, l.Date.Format(dateLayout),
			model.FormatMoney(l.Subtotal), model.FormatMoney(l.Discount), model.FormatMoney(l.SalesAmount))
	}
	fmt.Fprintf(tw, "Total sales:\t%s\n", model.FormatMoney(report.Total))
	tw.Flush()
}

func printPopular(w io.Writer, popular model.PopularItems) {
	if popular.Error != "" {
		fmt.Fprintf(w, "error: %s\n", popular.Error)
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "VEGETABLE\tQUANTITY")
	for _, t := range popular.Vegetables {
		fmt.Fprintf(tw, "%s\t%s\n", t.Name, t.Quantity.String())
	}
	fmt.Fprintln(tw, "BOX\tQUANTITY")
	for _, t := range popular.Boxes {
		fmt.Fprintf(tw, "%s\t%s\n", t.Name, t.Quantity.String())
	}
	tw.Flush()
}

func printCustomers(w io.Writer, customers []model.Customer) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tKIND\tBALANCE\tMAX OWING\tDELIVERY")
	for _, c := range customers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\n", c.ID, c.Name, c.Kind,
			model.FormatMoney(c.Balance), model.FormatMoney(c.MaxOwing), c.CanDeliver)
	}
	tw.Flush()
}

func printBalance(w io.Writer, c *model.Customer) {
	fmt.Fprintf(w, "%s (%s) owes %s of %s\n", c.Name, c.ID, model.FormatMoney(c.Balance), model.FormatMoney(c.MaxOwing))
}

func printHistory(w io.Writer, history model.CustomerHistory) {
	if history.Customer.ID != "" {
		printBalance(w, &history.Customer)
	}
	if history.Error != "" {
		fmt.Fprintf(w, "error: %s\n", history.Error)
		return
	}
	printOrderList(w, model.OrderList{Orders: history.Orders})
	if len(history.Payments) == 0 {
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "PAYMENT\tDATE\tAMOUNT\tORDER\tDETAILS")
	for _, p := range history.Payments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Date.Format(dateLayout), model.FormatMoney(p.Amount),
			p.OrderNumber, p.Description())
	}
	tw.Flush()
}

package view

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// newTable — таблица без рамок и разделителей, колонки выровнены по левому краю.
func newTable(w io.Writer) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetBorder(false)
	t.SetHeaderLine(false)
	t.SetRowLine(false)
	t.SetCenterSeparator("")
	t.SetColumnSeparator("")
	t.SetRowSeparator("")
	t.SetTablePadding("  ")
	t.SetNoWhiteSpace(true)
	return t
}

// WriteCards — сетка карточек для терминала.
func WriteCards(w io.Writer, cards []ProductCard) error {
	t := newTable(w)
	t.SetHeader([]string{"ID", "CATEGORY", "TITLE", "PRICE"})
	for _, c := range cards {
		t.Append([]string{strconv.Itoa(c.ID), c.CategoryLabel, c.Title, c.Price})
	}
	t.Render()
	return nil
}

// WriteCategoryBar — активная категория в квадратных скобках.
func WriteCategoryBar(w io.Writer, bar []CategoryButton) error {
	for i, b := range bar {
		sep := " "
		if i == len(bar)-1 {
			sep = "\n"
		}
		label := b.Label
		if b.Active {
			label = "[" + label + "]"
		}
		if _, err := io.WriteString(w, label+sep); err != nil {
			return err
		}
	}
	return nil
}

func WriteDetails(w io.Writer, d ProductDetails) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n\n%s\n\n%s  (rating %.1f, %d votes)\n",
		d.Title, d.Image, d.Description, d.Price, d.Rating.Rate, d.Rating.Count)
	return err
}

// WritePanel — панель корзины: строки, счётчик и итог.
func WritePanel(w io.Writer, p CartPanel) error {
	if len(p.Lines) > 0 {
		t := newTable(w)
		for _, l := range p.Lines {
			t.Append([]string{strconv.Itoa(l.ID), l.Title, l.Text})
		}
		t.Render()
	}
	_, err := fmt.Fprintf(w, "Items: %d\n%s\n", p.Count, p.Total)
	return err
}

package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"orcamentos/internal/domain/entities"
	"orcamentos/pkg"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ExportOrder godoc
// @Summary      Export an order as CSV
// @Tags         orders
// @Produce      text/csv
// @Param        id  path  string  true  "Order ID"
// @Success      200 {file}  file
// @Security     Bearer
// @Router       /orders/{id}/export.csv [get]
func (h *OrderHandler) ExportOrder(c *gin.Context) {
	order, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="orcamento-%s.csv"`, order.Code))
	c.Status(http.StatusOK)
	if err := writeOrderCSV(c.Writer, order); err != nil {
		log.Printf("[order][handler] export failed id=%s err=%v", order.ID, err)
	}
}

// writeOrderCSV lays out the order the same way the printed quote does:
// header, client block, one table per service, totals and observations.
func writeOrderCSV(w io.Writer, o entities.Order) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		{"ORÇAMENTO", "#" + o.Code},
		{"Data", o.Date.UTC().Format("02/01/2006")},
		{""},
		{"CLIENTE"},
		{"Nome", csvSafe(o.ClientName)},
		{"CNPJ", pkg.FormatDocument(o.ClientDocument)},
		{"Cidade", csvSafe(o.ClientCity)},
		{"Estado", csvSafe(o.ClientState)},
		{""},
	}

	serviceIDs := lo.Uniq(lo.Map(o.Items, func(it entities.OrderItem, _ int) string { return it.ServiceID }))
	for _, sid := range serviceIDs {
		rows = append(rows, []string{""}, []string{"Código", "Descrição", "Unidade", "Quantidade", "Valor Unitário", "Total"})
		for _, it := range lo.Filter(o.Items, func(it entities.OrderItem, _ int) bool { return it.ServiceID == sid }) {
			rows = append(rows, []string{
				csvSafe(it.Code),
				csvSafe(it.Description),
				csvSafe(it.Unit),
				formatQuantity(it.Quantity),
				formatBRL(it.UnitPrice),
				formatBRL(it.Total),
			})
		}
	}

	rows = append(rows,
		[]string{""},
		[]string{"Subtotal", formatBRL(o.Subtotal)},
		[]string{"Desconto", formatBRL(o.Discount)},
		[]string{"TOTAL", formatBRL(o.Total)},
	)
	if strings.TrimSpace(o.Observations) != "" {
		rows = append(rows, []string{""}, []string{"OBSERVAÇÕES"}, []string{csvSafe(o.Observations)})
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// formatBRL renders 1234.5 as "R$ 1.234,50".
func formatBRL(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	parts := strings.SplitN(d.StringFixed(2), ".", 2)
	return "R$ " + sign + groupThousands(parts[0]) + "," + parts[1]
}

func formatQuantity(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// csvSafe neutralizes cells that spreadsheets would run as formulas.
func csvSafe(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/ledger"
	"github.com/blackshrub/FaithTracker-Church-Pastoral-Care-System-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ExportAidLedger streams the settled financial-aid ledger as an .xlsx file.
// Ignored and pending entries are listed on a separate audit sheet so they
// stay out of the distributed totals.
func ExportAidLedger(c *gin.Context) {
	db, ok := middleware.GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	rows, err := db.Query(c.Request.Context(), `
		SELECT m.name, e.title, COALESCE(e.aid_type, 'other'),
			COALESCE(e.aid_amount, 0), e.event_date, e.completed, e.ignored
		FROM care_events e
		JOIN members m ON e.member_id = m.id
		WHERE e.event_type = 'financial_aid'
		ORDER BY e.event_date ASC
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query aid ledger", "details": err.Error()})
		return
	}
	defer rows.Close()

	f := excelize.NewFile()
	defer f.Close()

	ledgerSheet := "Aid Ledger"
	auditSheet := "Excluded Entries"
	index, err := f.NewSheet(ledgerSheet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create worksheet"})
		return
	}
	if _, err := f.NewSheet(auditSheet); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create worksheet"})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Member", "Title", "Aid Type", "Amount", "Date"}
	auditHeaders := []string{"Member", "Title", "Aid Type", "Amount", "Date", "Status"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(ledgerSheet, cell, h)
	}
	for i, h := range auditHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(auditSheet, cell, h)
	}

	ledgerRow, auditRow := 2, 2
	var total float64
	for rows.Next() {
		var name, title, aidType string
		var amount float64
		var eventDate time.Time
		var completed, ignored bool
		if err := rows.Scan(&name, &title, &aidType, &amount, &eventDate, &completed, &ignored); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse ledger data", "details": err.Error()})
			return
		}

		if completed && !ignored {
			f.SetCellValue(ledgerSheet, fmt.Sprintf("A%d", ledgerRow), name)
			f.SetCellValue(ledgerSheet, fmt.Sprintf("B%d", ledgerRow), title)
			f.SetCellValue(ledgerSheet, fmt.Sprintf("C%d", ledgerRow), aidType)
			f.SetCellValue(ledgerSheet, fmt.Sprintf("D%d", ledgerRow), amount)
			f.SetCellValue(ledgerSheet, fmt.Sprintf("E%d", ledgerRow), eventDate.Format("2006-01-02"))
			total += amount
			ledgerRow++
			continue
		}

		status := "pending"
		if ignored {
			status = "ignored"
		}
		f.SetCellValue(auditSheet, fmt.Sprintf("A%d", auditRow), name)
		f.SetCellValue(auditSheet, fmt.Sprintf("B%d", auditRow), title)
		f.SetCellValue(auditSheet, fmt.Sprintf("C%d", auditRow), aidType)
		f.SetCellValue(auditSheet, fmt.Sprintf("D%d", auditRow), amount)
		f.SetCellValue(auditSheet, fmt.Sprintf("E%d", auditRow), eventDate.Format("2006-01-02"))
		f.SetCellValue(auditSheet, fmt.Sprintf("F%d", auditRow), status)
		auditRow++
	}

	f.SetCellValue(ledgerSheet, fmt.Sprintf("C%d", ledgerRow+1), "Total")
	f.SetCellValue(ledgerSheet, fmt.Sprintf("D%d", ledgerRow+1), total)

	if err := writeMemberTotals(c, db, f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build member totals", "details": err.Error()})
		return
	}

	filename := fmt.Sprintf("aid-ledger-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write workbook"})
		return
	}
}

// writeMemberTotals adds a per-member settled totals sheet to the workbook.
func writeMemberTotals(c *gin.Context, db queryer, f *excelize.File) error {
	entries, err := aidEntries(c, db, nil)
	if err != nil {
		return err
	}
	totals := ledger.MemberTotals(entries)

	names := make(map[uuid.UUID]string, len(totals))
	rows, err := db.Query(c.Request.Context(), `SELECT id, name FROM members`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return err
	}

	sheet := "Member Totals"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	f.SetCellValue(sheet, "A1", "Member")
	f.SetCellValue(sheet, "B1", "Total Given")

	memberIDs := make([]uuid.UUID, 0, len(totals))
	for id := range totals {
		memberIDs = append(memberIDs, id)
	}
	sort.Slice(memberIDs, func(i, j int) bool {
		return names[memberIDs[i]] < names[memberIDs[j]]
	})

	for i, id := range memberIDs {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), names[id])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), totals[id])
	}
	return nil
}

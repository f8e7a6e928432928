package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ReportService builds downloadable ESG report workbooks.
type ReportService interface {
	// ExportESGWorkbook renders the enterprise's SDG and emission records
	// into an xlsx workbook and returns the file bytes plus a filename.
	ExportESGWorkbook(ctx context.Context, enterpriseID, period string) ([]byte, string, error)
}

type reportService struct {
	sdgRepo repository.SDGProgressRepository
	ghgRepo repository.GHGEmissionRepository
}

func NewReportService(sdgRepo repository.SDGProgressRepository, ghgRepo repository.GHGEmissionRepository) ReportService {
	return &reportService{sdgRepo: sdgRepo, ghgRepo: ghgRepo}
}

func (s *reportService) ExportESGWorkbook(ctx context.Context, enterpriseID, period string) ([]byte, string, error) {
	entID, err := uuid.Parse(enterpriseID)
	if err != nil {
		return nil, "", fmt.Errorf("missing enterprise scope: %w", err)
	}

	filter := repository.ESGRecordFilter{
		EnterpriseID:    entID,
		ReportingPeriod: period,
		Page:            1,
		Limit:           10000,
	}
	sdgRecords, _, err := s.sdgRepo.List(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	ghgRecords, _, err := s.ghgRepo.List(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSDGSheet(f, sdgRecords); err != nil {
		return nil, "", err
	}
	if err := writeEmissionSheet(f, ghgRecords); err != nil {
		return nil, "", err
	}
	if err := writeSummarySheet(f, sdgRecords, ghgRecords, period); err != nil {
		return nil, "", err
	}
	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, "", err
	}

	name := fmt.Sprintf("esg_report_%s.xlsx", time.Now().Format("2006-01-02"))
	if period != "" {
		name = fmt.Sprintf("esg_report_%s.xlsx", period)
	}
	return buf.Bytes(), name, nil
}

func writeSDGSheet(f *excelize.File, records []model.SDGProgress) error {
	const sheet = "SDG Progress"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"SDG Goal", "Description", "Progress %", "Reporting Period", "Status", "Updated"}
	if err := writeRow(f, sheet, 1, toCells(headers)); err != nil {
		return err
	}
	for i, r := range records {
		row := []interface{}{
			r.SDGNumber,
			r.Description,
			r.ProgressPercentage,
			r.ReportingPeriod,
			r.Status,
			r.UpdatedAt.Format("2006-01-02"),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeEmissionSheet(f *excelize.File, records []model.GHGEmission) error {
	const sheet = "GHG Emissions"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"Scope", "Source", "Value", "Unit", "Reporting Period", "Status"}
	if err := writeRow(f, sheet, 1, toCells(headers)); err != nil {
		return err
	}
	for i, r := range records {
		row := []interface{}{
			r.Scope,
			r.Source,
			r.Value.String(),
			r.Unit,
			r.ReportingPeriod,
			r.Status,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sdg []model.SDGProgress, ghg []model.GHGEmission, period string) error {
	const sheet = "Summary"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}

	totals := map[int]decimal.Decimal{}
	approvedEmissions := 0
	for _, r := range ghg {
		totals[r.Scope] = totals[r.Scope].Add(r.Value)
		if r.Status == model.RecordStatusApproved {
			approvedEmissions++
		}
	}

	approvedSDG := 0
	for _, r := range sdg {
		if r.Status == model.RecordStatusApproved {
			approvedSDG++
		}
	}

	label := period
	if label == "" {
		label = "all periods"
	}

	rows := [][]interface{}{
		{"ESG Report", label},
		{},
		{"SDG progress records", len(sdg)},
		{"SDG records approved", approvedSDG},
		{"Emission records", len(ghg)},
		{"Emission records approved", approvedEmissions},
		{},
		{"Scope 1 total", totals[model.EmissionScope1].String()},
		{"Scope 2 total", totals[model.EmissionScope2].String()},
		{"Scope 3 total", totals[model.EmissionScope3].String()},
	}
	for i, row := range rows {
		if err := writeRow(f, sheet, i+1, row); err != nil {
			return err
		}
	}

	f.SetActiveSheet(index)
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func toCells(headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}

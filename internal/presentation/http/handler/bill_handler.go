package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/davidkuria/resto-api/internal/application/service"
	"github.com/davidkuria/resto-api/internal/presentation/http/dto/request"
	"github.com/davidkuria/resto-api/internal/presentation/http/dto/response"
	"github.com/davidkuria/resto-api/pkg/pagination"
)

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billService *service.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// Create handles bill creation and returns the generated invoice id.
func (h *BillHandler) Create(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateBillInput{
		CustomerMobile: req.CustomerMobile,
		Items:          make([]service.BillItemInput, 0, len(req.Items)),
		Total:          req.Total,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.BillItemInput{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", gin.H{
		"invoice_id": bill.ID,
	})
}

// Get handles bill lookup by invoice id.
func (h *BillHandler) Get(c *gin.Context) {
	bill, err := h.billService.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// List handles paginated bill listing.
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}

	result, err := h.billService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Report handles the daily sales report.
func (h *BillHandler) Report(c *gin.Context) {
	report, err := h.billService.Report(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated successfully", report)
}

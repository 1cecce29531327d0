// Package testutil holds in-memory repository fakes for service tests.
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.CustomerRepository  = (*CustomerRepo)(nil)
	_ repository.InvoiceRepository   = (*InvoiceRepo)(nil)
	_ repository.AuthRepository      = (*AuthRepo)(nil)
	_ repository.DashboardRepository = (*DashboardRepo)(nil)
)

// Product builds a product fixture.
func Product(id, name string, price string, qty int) entity.Product {
	return entity.Product{
		ID:          id,
		ProductCode: "P-" + id,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		FinalPrice:  decimal.RequireFromString(price),
		Quantity:    qty,
		CategoryID:  "cat-1",
		IsActive:    true,
	}
}

// Customer builds a customer fixture.
func Customer(id, name, balance string) entity.Customer {
	return entity.Customer{
		ID:            id,
		Name:          name,
		Phone:         "01000000000",
		WalletBalance: decimal.RequireFromString(balance),
		IsActive:      true,
	}
}

// ProductRepo is an in-memory ProductRepository.
type ProductRepo struct {
	mu       sync.Mutex
	Products map[string]entity.Product
	// StockErr makes SetStock fail for the listed product ids.
	StockErr  map[string]error
	StockSets map[string]int
	ListCalls int
}

func NewProductRepo(products ...entity.Product) *ProductRepo {
	r := &ProductRepo{
		Products:  map[string]entity.Product{},
		StockErr:  map[string]error{},
		StockSets: map[string]int{},
	}
	for _, p := range products {
		r.Products[p.ID] = p
	}
	return r
}

func (r *ProductRepo) sorted() []entity.Product {
	out := make([]entity.Product, 0, len(r.Products))
	for _, p := range r.Products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *ProductRepo) List(_ context.Context, params *repository.ProductFilterParams) (*entity.ProductList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ListCalls++

	page := pagination.DefaultPagination()
	if params != nil && params.Pagination != nil {
		page = params.Pagination
	}
	page.Validate()

	all := r.sorted()
	start := (page.Page - 1) * page.PageSize
	end := start + page.PageSize
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}
	totalPages := (len(all) + page.PageSize - 1) / page.PageSize
	return &entity.ProductList{
		Products:   append([]entity.Product{}, all[start:end]...),
		Total:      int64(len(all)),
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Products[id]
	if !ok {
		return nil, apperror.NewAPIError(404, "Product not found")
	}
	return &p, nil
}

func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.Products {
		if p.ProductCode == code {
			p := p
			return &p, nil
		}
	}
	return nil, apperror.NewAPIError(404, "Product not found")
}

func (r *ProductRepo) Create(_ context.Context, input *repository.ProductInput) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := entity.Product{ID: uuid.New().String(), Name: *input.Name, Price: *input.Price, IsActive: true}
	if input.Quantity != nil {
		p.Quantity = *input.Quantity
	}
	if input.CategoryID != nil {
		p.CategoryID = *input.CategoryID
	}
	r.Products[p.ID] = p
	return &p, nil
}

func (r *ProductRepo) Update(_ context.Context, id string, input *repository.ProductInput) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Products[id]
	if !ok {
		return nil, apperror.NewAPIError(404, "Product not found")
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Quantity != nil {
		p.Quantity = *input.Quantity
	}
	r.Products[id] = p
	return &p, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Products, id)
	return nil
}

func (r *ProductRepo) SetStock(_ context.Context, id string, quantity int) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.StockErr[id]; err != nil {
		return nil, err
	}
	p, ok := r.Products[id]
	if !ok {
		return nil, apperror.NewAPIError(404, "Product not found")
	}
	p.Quantity = quantity
	r.Products[id] = p
	r.StockSets[id] = quantity
	return &p, nil
}

func (r *ProductRepo) ExportInventory(context.Context) (*repository.Export, error) {
	return &repository.Export{Filename: "inventory.csv", ContentType: "text/csv", Body: []byte("id,name\n")}, nil
}

// Stock returns the current quantity of a product.
func (r *ProductRepo) Stock(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Products[id].Quantity
}

// CustomerRepo is an in-memory CustomerRepository.
type CustomerRepo struct {
	mu        sync.Mutex
	Customers map[string]entity.Customer
	MeID      string
	Adjusted  []entity.WalletAdjustment
}

func NewCustomerRepo(customers ...entity.Customer) *CustomerRepo {
	r := &CustomerRepo{Customers: map[string]entity.Customer{}}
	for _, c := range customers {
		r.Customers[c.ID] = c
	}
	return r
}

func (r *CustomerRepo) List(_ context.Context, params *repository.CustomerFilterParams) (*entity.CustomerList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Customer, 0, len(r.Customers))
	for _, c := range r.Customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return &entity.CustomerList{Customers: out, Total: int64(len(out)), Page: 1, PageSize: len(out), TotalPages: 1}, nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Customers[id]
	if !ok {
		return nil, apperror.NewAPIError(404, "Customer not found")
	}
	return &c, nil
}

func (r *CustomerRepo) Me(ctx context.Context) (*entity.Customer, error) {
	return r.GetByID(ctx, r.MeID)
}

func (r *CustomerRepo) Create(_ context.Context, input *repository.CustomerInput) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := entity.Customer{ID: uuid.New().String(), Name: *input.Name, Phone: *input.Phone, IsActive: true, FirstLogin: true}
	if input.WalletBalance != nil {
		c.WalletBalance = *input.WalletBalance
	}
	r.Customers[c.ID] = c
	return &c, nil
}

func (r *CustomerRepo) Update(_ context.Context, id string, input *repository.CustomerInput) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Customers[id]
	if !ok {
		return nil, apperror.NewAPIError(404, "Customer not found")
	}
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Phone != nil {
		c.Phone = *input.Phone
	}
	if input.WalletBalance != nil {
		c.WalletBalance = *input.WalletBalance
	}
	r.Customers[id] = c
	return &c, nil
}

func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Customers, id)
	return nil
}

func (r *CustomerRepo) Stats(context.Context) (*entity.CustomerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &entity.CustomerStats{TotalCustomers: len(r.Customers)}, nil
}

func (r *CustomerRepo) AdjustWallet(_ context.Context, id string, adj *entity.WalletAdjustment) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Customers[id]
	if !ok {
		return nil, apperror.NewAPIError(404, "Customer not found")
	}
	if adj.Type == enum.WalletTransactionDeduct {
		if adj.Amount.GreaterThan(c.WalletBalance) {
			return nil, apperror.NewAPIError(400, "Insufficient wallet balance")
		}
		c.WalletBalance = c.WalletBalance.Sub(adj.Amount)
	} else {
		c.WalletBalance = c.WalletBalance.Add(adj.Amount)
	}
	r.Customers[id] = c
	r.Adjusted = append(r.Adjusted, *adj)
	return &c, nil
}

// InvoiceRepo is an in-memory InvoiceRepository that counts calls.
type InvoiceRepo struct {
	mu          sync.Mutex
	Invoices    map[string]entity.Invoice
	CreateErr   error
	Created     []entity.InvoiceInput
	Updated     []entity.InvoiceInput
	GetCalls    int
	DeleteCalls int
	// Block, when set, is waited on inside Create so tests can observe a
	// submission in flight.
	Block chan struct{}
}

func NewInvoiceRepo(invoices ...entity.Invoice) *InvoiceRepo {
	r := &InvoiceRepo{Invoices: map[string]entity.Invoice{}}
	for _, inv := range invoices {
		r.Invoices[inv.ID] = inv
	}
	return r
}

func (r *InvoiceRepo) List(_ context.Context, params *repository.InvoiceFilterParams) (*entity.InvoiceList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Invoice, 0, len(r.Invoices))
	for _, inv := range r.Invoices {
		if params != nil && params.Status != "" && inv.Status != params.Status {
			continue
		}
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return &entity.InvoiceList{Invoices: out, Total: int64(len(out)), Page: 1, PageSize: 20, TotalPages: 1}, nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.GetCalls++
	inv, ok := r.Invoices[id]
	if !ok {
		return nil, apperror.NewAPIError(404, "Invoice not found")
	}
	return &inv, nil
}

func (r *InvoiceRepo) fromInput(id string, input *entity.InvoiceInput) entity.Invoice {
	inv := entity.Invoice{
		ID:            id,
		CustomerID:    input.CustomerID,
		Status:        input.Status,
		Notes:         input.Notes,
		WalletPayment: input.WalletPayment,
		WalletAdd:     input.WalletAdd,
		Discount:      input.Discount,
		DiscountType:  input.DiscountType,
	}
	total := decimal.Zero
	for _, item := range input.Items {
		itemID := item.ID
		if itemID == "" {
			itemID = uuid.New().String()
		}
		line := entity.InvoiceItem{ID: itemID, ProductID: item.ProductID, Quantity: item.Quantity, Price: item.Price}
		inv.Items = append(inv.Items, line)
		total = total.Add(line.LineTotal())
	}
	inv.Total = total
	return inv
}

func (r *InvoiceRepo) Create(_ context.Context, input *entity.InvoiceInput) (*entity.Invoice, error) {
	if r.Block != nil {
		<-r.Block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}
	r.Created = append(r.Created, *input)
	inv := r.fromInput(uuid.New().String(), input)
	r.Invoices[inv.ID] = inv
	return &inv, nil
}

func (r *InvoiceRepo) Update(_ context.Context, id string, input *entity.InvoiceInput) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Invoices[id]; !ok {
		return nil, apperror.NewAPIError(404, "Invoice not found")
	}
	r.Updated = append(r.Updated, *input)
	inv := r.fromInput(id, input)
	r.Invoices[id] = inv
	return &inv, nil
}

func (r *InvoiceRepo) UpdateStatus(_ context.Context, id string, status enum.InvoiceStatus) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.Invoices[id]
	if !ok {
		return nil, apperror.NewAPIError(404, "Invoice not found")
	}
	inv.Status = status
	r.Invoices[id] = inv
	return &inv, nil
}

func (r *InvoiceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.DeleteCalls++
	if _, ok := r.Invoices[id]; !ok {
		return apperror.NewAPIError(404, "Invoice not found")
	}
	delete(r.Invoices, id)
	return nil
}

func (r *InvoiceRepo) ListByCustomer(_ context.Context, customerID string) ([]entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Invoice{}
	for _, inv := range r.Invoices {
		if inv.CustomerID == customerID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *InvoiceRepo) GetForCustomer(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *InvoiceRepo) Stats(context.Context) (*entity.InvoiceStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &entity.InvoiceStats{TotalInvoices: len(r.Invoices)}, nil
}

// Calls returns the get and delete call counts.
func (r *InvoiceRepo) Calls() (gets, deletes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.GetCalls, r.DeleteCalls
}

// AuthRepo is a scripted AuthRepository.
type AuthRepo struct {
	Users       map[string]entity.User
	Passwords   map[string]string
	LogoutCalls int
	PasswordSet map[string]string
}

func NewAuthRepo() *AuthRepo {
	return &AuthRepo{Users: map[string]entity.User{}, Passwords: map[string]string{}, PasswordSet: map[string]string{}}
}

// AddUser registers a user that can log in with password.
func (r *AuthRepo) AddUser(u entity.User, password string) {
	r.Users[u.Phone] = u
	r.Passwords[u.Phone] = password
}

func (r *AuthRepo) Login(_ context.Context, phone, password string, _ enum.UserRole) (*entity.User, string, error) {
	u, ok := r.Users[phone]
	if !ok || r.Passwords[phone] != password {
		return nil, "", apperror.NewAPIError(401, "Incorrect phone or password")
	}
	return &u, "backend-token-" + u.ID, nil
}

func (r *AuthRepo) Me(context.Context) (*entity.User, error) {
	for _, u := range r.Users {
		return &u, nil
	}
	return nil, apperror.ErrUnauthorized
}

func (r *AuthRepo) Logout(context.Context) error {
	r.LogoutCalls++
	return nil
}

func (r *AuthRepo) CheckCustomer(_ context.Context, phone string) (*entity.CustomerCheck, error) {
	u, ok := r.Users[phone]
	if !ok {
		return &entity.CustomerCheck{Exists: false, Phone: phone}, nil
	}
	name := u.Name
	return &entity.CustomerCheck{Exists: true, CustomerName: &name, Phone: phone, HasPassword: r.Passwords[phone] != "", FirstLogin: u.FirstLogin}, nil
}

func (r *AuthRepo) SetCustomerPassword(_ context.Context, phone, password string) (*entity.PasswordSetResult, error) {
	r.PasswordSet[phone] = password
	return &entity.PasswordSetResult{Success: true}, nil
}

func (r *AuthRepo) SetCustomerPasswordByID(_ context.Context, customerID, password string) (*entity.PasswordSetResult, error) {
	r.PasswordSet[customerID] = password
	return &entity.PasswordSetResult{Success: true}, nil
}

// DashboardRepo returns fixed aggregates; Err makes named widgets fail.
type DashboardRepo struct {
	Err map[string]error
}

func (r *DashboardRepo) fail(widget string) error {
	if r.Err == nil {
		return nil
	}
	return r.Err[widget]
}

func (r *DashboardRepo) Stats(context.Context) (*entity.DashboardStats, error) {
	if err := r.fail("stats"); err != nil {
		return nil, err
	}
	return &entity.DashboardStats{Products: entity.ProductCounts{Total: 3, LowStock: 1}}, nil
}

func (r *DashboardRepo) SalesTrend(_ context.Context, days int) (*entity.SalesTrend, error) {
	if err := r.fail("sales_trend"); err != nil {
		return nil, err
	}
	return &entity.SalesTrend{Period: "days", Data: make([]entity.SalesPoint, days)}, nil
}

func (r *DashboardRepo) CategoryDistribution(context.Context) (*entity.CategoryDistribution, error) {
	if err := r.fail("category_distribution"); err != nil {
		return nil, err
	}
	return &entity.CategoryDistribution{Categories: []entity.CategoryShare{{Name: "Food", Value: 2}}}, nil
}

func (r *DashboardRepo) RecentActivities(_ context.Context, limit int) (*entity.RecentActivities, error) {
	if err := r.fail("recent_activities"); err != nil {
		return nil, err
	}
	return &entity.RecentActivities{Activities: make([]entity.Activity, 0, limit)}, nil
}

func (r *DashboardRepo) LowStockProducts(_ context.Context, threshold int) (*entity.LowStockReport, error) {
	if err := r.fail("low_stock"); err != nil {
		return nil, err
	}
	return &entity.LowStockReport{Products: []entity.Product{}, Threshold: threshold}, nil
}

package main

import (
	"fmt"
	"net/http"

	"github.com/zenithhr/payroll-backend-go/internal/config"
	"github.com/zenithhr/payroll-backend-go/internal/domain/expense"
	appHTTP "github.com/zenithhr/payroll-backend-go/internal/handler/http"
	"github.com/zenithhr/payroll-backend-go/internal/pkg/database"
	"github.com/zenithhr/payroll-backend-go/internal/pkg/jwt"
	"github.com/zenithhr/payroll-backend-go/internal/repository/postgresql"
	expenseService "github.com/zenithhr/payroll-backend-go/internal/service/expense"
	payrollService "github.com/zenithhr/payroll-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	salaryConfigRepo := postgresql.NewSalaryConfigRepository(db)
	expenseClaimRepo := postgresql.NewExpenseClaimRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	payrollSvc := payrollService.NewPayrollService(db, salaryConfigRepo, employeeRepo)
	expenseSvc := expenseService.NewExpenseService(db, expenseClaimRepo, expense.DefaultApprovalRules())

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	expenseHandler := appHTTP.NewExpenseHandler(expenseSvc)

	router := appHTTP.NewRouter(JWTService, payrollHandler, expenseHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

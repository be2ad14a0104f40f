package repo

import (
	"github.com/GlebRadaev/payledger/internal/pg"
	accountrepo "github.com/GlebRadaev/payledger/internal/repo/account-repo"
	"github.com/GlebRadaev/payledger/internal/repo/memory"
	methodrepo "github.com/GlebRadaev/payledger/internal/repo/method-repo"
	payoutrepo "github.com/GlebRadaev/payledger/internal/repo/payout-repo"
	transactionrepo "github.com/GlebRadaev/payledger/internal/repo/transaction-repo"
	"github.com/GlebRadaev/payledger/internal/service/chargeservice"
	"github.com/GlebRadaev/payledger/internal/service/methodservice"
	"github.com/GlebRadaev/payledger/internal/service/payoutservice"
)

type Repositories struct {
	MethodRepo      methodservice.Repo
	TransactionRepo chargeservice.Repo
	AccountRepo     payoutservice.AccountRepo
	PayoutRepo      payoutservice.PayoutRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		MethodRepo:      methodrepo.New(conn, txManager),
		TransactionRepo: transactionrepo.New(conn),
		AccountRepo:     accountrepo.New(conn, txManager),
		PayoutRepo:      payoutrepo.New(conn),
	}
}

// NewMemory keeps everything in process memory; nothing survives a restart.
func NewMemory() *Repositories {
	return &Repositories{
		MethodRepo:      memory.NewMethodRepo(),
		TransactionRepo: memory.NewTransactionRepo(),
		AccountRepo:     memory.NewAccountRepo(),
		PayoutRepo:      memory.NewPayoutRepo(),
	}
}

package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/inventory"
)

func credit(seq, old, amount int64) *entity.InventoryTransaction {
	return &entity.InventoryTransaction{Seq: seq, Type: entity.TransactionCredit, OldQuantity: old, Amount: amount, NewQuantity: old + amount}
}

func debit(seq, old, amount int64) *entity.InventoryTransaction {
	return &entity.InventoryTransaction{Seq: seq, Type: entity.TransactionDebit, OldQuantity: old, Amount: amount, NewQuantity: old - amount}
}

func TestReplay_CadenaConsistente(t *testing.T) {
	res := inventory.Replay([]*entity.InventoryTransaction{
		credit(1, 0, 100),
		debit(2, 100, 30),
		credit(3, 70, 5),
	})
	assert.Equal(t, 3, res.Transactions)
	assert.Equal(t, int64(105), res.Credits)
	assert.Equal(t, int64(30), res.Debits)
	assert.Equal(t, int64(75), res.ReplayedQty)
	assert.Zero(t, res.FirstBrokenSeq)
	assert.True(t, res.Balanced(75))
	assert.False(t, res.Balanced(76))
}

func TestReplay_SinHistorial(t *testing.T) {
	res := inventory.Replay(nil)
	assert.Zero(t, res.ReplayedQty)
	assert.True(t, res.Balanced(0))
}

func TestReplay_DetectaEslabonRoto(t *testing.T) {
	broken := credit(2, 90, 10) // la fila anterior dejó 100
	res := inventory.Replay([]*entity.InventoryTransaction{credit(1, 0, 100), broken, debit(3, 100, 20)})
	assert.Equal(t, int64(2), res.FirstBrokenSeq)
	assert.False(t, res.Balanced(res.ReplayedQty))
}

func TestReplay_DetectaFilaInconsistente(t *testing.T) {
	bad := &entity.InventoryTransaction{Seq: 1, Type: entity.TransactionCredit, OldQuantity: 0, Amount: 10, NewQuantity: 11}
	res := inventory.Replay([]*entity.InventoryTransaction{bad})
	assert.Equal(t, int64(1), res.FirstBrokenSeq)
}

func TestReplay_DetectaNegativo(t *testing.T) {
	res := inventory.Replay([]*entity.InventoryTransaction{debit(1, 0, 5)})
	assert.Equal(t, int64(1), res.NegativeAtSeq)
	assert.False(t, res.Balanced(-5))
}

package inventory

import "github.com/jhoicas/Produccion-api/internal/domain/entity"

// ReplayResult resultado de reconstruir la cantidad de un producto desde su historial.
type ReplayResult struct {
	Transactions   int
	Credits        int64
	Debits         int64
	ReplayedQty    int64
	FirstBrokenSeq int64 // 0 si la cadena es consistente
	NegativeAtSeq  int64 // 0 si nunca quedó negativa
}

// Replay aplica las transacciones en orden de Seq partiendo de cero.
// Cada fila debe cumplir NewQuantity = OldQuantity ± Amount y OldQuantity debe coincidir con
// la NewQuantity de la fila anterior; la primera fila que no lo cumpla queda en FirstBrokenSeq.
func Replay(txs []*entity.InventoryTransaction) ReplayResult {
	var res ReplayResult
	var qty int64
	for _, tx := range txs {
		res.Transactions++
		if res.FirstBrokenSeq == 0 && (!tx.Consistent() || tx.OldQuantity != qty) {
			res.FirstBrokenSeq = tx.Seq
		}
		qty += tx.Delta()
		if tx.Type == entity.TransactionDebit {
			res.Debits += tx.Amount
		} else {
			res.Credits += tx.Amount
		}
		if qty < 0 && res.NegativeAtSeq == 0 {
			res.NegativeAtSeq = tx.Seq
		}
	}
	res.ReplayedQty = qty
	return res
}

// Balanced indica si el replay coincide con la cantidad almacenada y la cadena está íntegra.
func (r ReplayResult) Balanced(stored int64) bool {
	return r.ReplayedQty == stored && r.FirstBrokenSeq == 0 && r.NegativeAtSeq == 0
}

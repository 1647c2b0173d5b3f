package flowkit

//BatchListener observes batch boundaries of a Map run
type BatchListener interface {
	//BeforeBatch execute before a batch is submitted, an error stops the run
	BeforeBatch(ctx *BatchContext) BatchError
	//AfterBatch execute after a batch fully completed, an error stops the run
	AfterBatch(ctx *BatchContext, states []*State) BatchError
}

package checkout

// Step 结账步骤
type Step string

const (
	StepSummary      Step = "summary"       // 订单汇总
	StepCustomerInfo Step = "customer_info" // 填写收货人信息
	StepPayment      Step = "payment"       // 确认支付
	StepSuccess      Step = "success"       // 下单成功
	StepFailure      Step = "failure"       // 下单失败
)

// transitions 合法的步骤流转
var transitions = map[Step][]Step{
	StepSummary:      {StepCustomerInfo},
	StepCustomerInfo: {StepSummary, StepPayment},
	StepPayment:      {StepCustomerInfo, StepSuccess, StepFailure},
	StepSuccess:      {StepSummary},
	StepFailure:      {StepPayment},
}

// CanTransitionTo 检查是否可以切换到目标步骤
func (s Step) CanTransitionTo(target Step) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

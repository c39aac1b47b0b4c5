package payment_fx

import (
	"os"

	"go.uber.org/fx"

	"mboga/internal/api/controllers"
	"mboga/internal/repositories"
	"mboga/internal/services"
	"mboga/pkg/daraja"
	mem "mboga/pkg/memcache"
)

var Module = fx.Provide(
	provideDarajaClient,
	providePendingPayments,
	providePaymentStatuses,
	providePaymentService,
	providePaymentController,
)

func provideDarajaClient() *daraja.Client {
	return daraja.NewClient(daraja.Config{
		ShortCode:      os.Getenv("MPESA_SHORTCODE"),
		Passkey:        os.Getenv("MPESA_PASSKEY"),
		ConsumerKey:    os.Getenv("MPESA_CONSUMER_KEY"),
		ConsumerSecret: os.Getenv("MPESA_CONSUMER_SECRET"),
		BaseURL:        os.Getenv("MPESA_BASE_URL"),
		CallbackURL:    os.Getenv("CALLBACK_BASE_URL") + "/mpesaCallback",
	})
}

func providePendingPayments() *mem.PendingPayments {
	return mem.NewPendingPayments()
}

func providePaymentStatuses() *mem.PaymentStatuses {
	return mem.NewPaymentStatuses()
}

func providePaymentService(
	orders repositories.OrderRepositoryInterface,
	pending *mem.PendingPayments,
	statuses *mem.PaymentStatuses,
	client *daraja.Client,
) services.PaymentServiceInterface {
	return services.NewPaymentService(orders, pending, statuses, client)
}

func providePaymentController(paymentService services.PaymentServiceInterface) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService)
}

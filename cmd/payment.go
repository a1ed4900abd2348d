package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"course-agent/config"
	"course-agent/constant"
	"course-agent/dto"
	"course-agent/entities"
	"course-agent/server"
	"course-agent/service"
)

func payment(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "start and inspect course payments",
	}
	cmd.AddCommand(paymentPay(cfg), paymentStatus(cfg))
	return cmd
}

func paymentPay(cfg *config.Config) *cobra.Command {
	var (
		method   string
		courseID string
		amount   float64
		currency string
		provider string
		phone    string
		cardPM   string
	)

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "start a checkout attempt",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}
			cid, err := uuid.Parse(courseID)
			if err != nil {
				return fmt.Errorf("invalid course id: %w", err)
			}
			svc := service.NewPaymentService(client)

			var intent *entities.PaymentIntent
			switch constant.PaymentMethod(method) {
			case constant.PaymentMethodCard:
				intent, err = svc.PayWithCard(ctx, dto.CardPaymentRequest{
					CourseID: cid, Amount: amount, Currency: currency, PaymentMethodID: cardPM,
				})
			case constant.PaymentMethodMobileMoney:
				intent, err = svc.PayWithMobileMoney(ctx, dto.MobileMoneyRequest{
					CourseID: cid, Amount: amount, Currency: currency, Provider: provider, PhoneNumber: phone,
				})
			case constant.PaymentMethodBankTransfer:
				intent, err = svc.PayWithBankTransfer(ctx, dto.BankTransferRequest{
					CourseID: cid, Amount: amount, Currency: currency,
				})
			case constant.PaymentMethodCrypto:
				var payment *entities.CryptoPayment
				payment, err = svc.PayWithCrypto(ctx, dto.CryptoPaymentRequest{
					CourseID: cid, Amount: amount, Currency: currency,
				})
				if err != nil {
					return err
				}
				fmt.Printf("send %s %s to %s before %s\n", payment.Amount, payment.Currency, payment.Address, payment.ExpiresAt)
				fmt.Printf("payment id: %s\n", payment.PaymentID)
				return nil
			default:
				return fmt.Errorf("unknown payment method %q", method)
			}
			if err != nil {
				return err
			}

			fmt.Printf("payment %s: %s\n", intent.ID, intent.Status)
			if intent.Instructions != "" {
				fmt.Println(intent.Instructions)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "card", "card, mobile_money, bank_transfer or crypto")
	cmd.Flags().StringVar(&courseID, "course", "", "course id")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to pay")
	cmd.Flags().StringVar(&currency, "currency", "USD", "currency code")
	cmd.Flags().StringVar(&provider, "provider", "", "mobile money provider")
	cmd.Flags().StringVar(&phone, "phone", "", "mobile money phone number")
	cmd.Flags().StringVar(&cardPM, "payment-method-id", "", "tokenized card id")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func paymentStatus(cfg *config.Config) *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "status [payment-id]",
		Short: "check a payment's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server.SetupLogger(cfg)
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}
			svc := service.NewPaymentService(client)

			var intent *entities.PaymentIntent
			if wait {
				intent, err = svc.WaitForStatus(ctx, args[0])
			} else {
				intent, err = svc.CheckStatus(ctx, args[0])
			}
			if err != nil {
				return err
			}
			fmt.Printf("payment %s: %s\n", intent.ID, intent.Status)
			return nil
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the payment settles")
	return cmd
}

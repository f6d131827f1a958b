// pkg/email/service.go
package email

var GlobalEmailService *EmailService

func InitEmailService(opts Options) error {
	service, err := NewEmailService(opts)
	if err != nil {
		return err
	}
	GlobalEmailService = service
	return nil
}

package ftp

import (
	"os"
)

var (
	deliveryIP       = os.Getenv("DELIVERY_FTP_IP")
	deliveryUser     = os.Getenv("DELIVERY_FTP_USER")
	deliveryPassword = os.Getenv("DELIVERY_FTP_PASSWORD")
)

func Delivery() (*Client, error) {
	return NewClient(deliveryIP, deliveryUser, deliveryPassword)
}

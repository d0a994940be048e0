package cloud

import (
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/credentials/ec2rolecreds"
	"github.com/aws/aws-sdk-go/aws/ec2metadata"
	"github.com/aws/aws-sdk-go/aws/session"
)

// awsProfile is the named profile looked up in ~/.aws/credentials when
// present, falling back to the instance's EC2 role.
const awsProfile = "galleon"

func awsSession(region string) (*session.Session, error) {
	var creds *credentials.Credentials
	if home, err := os.UserHomeDir(); err == nil {
		path := home + "/.aws/credentials"
		if _, statErr := os.Stat(path); statErr == nil {
			creds = credentials.NewSharedCredentials(path, awsProfile)
		}
	}
	if creds == nil {
		creds = credentials.NewCredentials(&ec2rolecreds.EC2RoleProvider{
			Client: ec2metadata.New(session.New(aws.NewConfig())),
		})
	}
	return session.NewSession(&aws.Config{Region: aws.String(region), Credentials: creds})
}

// publicIP asks a well-known endpoint to discover this instance's
// public address.
func publicIP() (net.IP, error) {
	client := http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://checkip.amazonaws.com")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	ipString := strings.TrimSpace(string(body))
	ip := net.ParseIP(ipString)
	if ip == nil {
		return nil, errors.New("cloud: could not parse public ip " + ipString)
	}
	return ip, nil
}

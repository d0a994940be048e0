package dns

import (
	"fmt"
	"net"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/route53"
)

// Route53DNS publishes a single "ws.<domain>" A record for this server:
// one process, one record, no region/slot naming scheme.
type Route53DNS struct {
	svc    *route53.Route53
	domain string
	zoneID string
}

func NewRoute53DNS(sess *session.Session, domain, zoneID string) (*Route53DNS, error) {
	return &Route53DNS{svc: route53.New(sess), domain: domain, zoneID: zoneID}, nil
}

func (r *Route53DNS) UpdateRoute(address net.IP) error {
	req := &route53.ChangeResourceRecordSetsInput{
		ChangeBatch: &route53.ChangeBatch{
			Changes: []*route53.Change{
				{
					Action: aws.String("UPSERT"),
					ResourceRecordSet: &route53.ResourceRecordSet{
						Name: aws.String(fmt.Sprintf("ws.%s", r.domain)),
						Type: aws.String("A"),
						ResourceRecords: []*route53.ResourceRecord{
							{Value: aws.String(address.String())},
						},
						TTL: aws.Int64(60),
					},
				},
			},
		},
		HostedZoneId: aws.String(r.zoneID),
	}
	_, err := r.svc.ChangeResourceRecordSets(req)
	return err
}

package ingress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/utils/ptr"
)

func ingressFixture(ns, name string, hosts []string, tls []networkingv1.IngressTLS) *networkingv1.Ingress {
	var rules []networkingv1.IngressRule
	for _, h := range hosts {
		rules = append(rules, networkingv1.IngressRule{
			Host: h,
			IngressRuleValue: networkingv1.IngressRuleValue{
				HTTP: &networkingv1.HTTPIngressRuleValue{
					Paths: []networkingv1.HTTPIngressPath{{
						Path:     "/",
						PathType: ptr.To(networkingv1.PathTypePrefix),
						Backend: networkingv1.IngressBackend{
							Service: &networkingv1.IngressServiceBackend{
								Name: name,
								Port: networkingv1.ServiceBackendPort{Number: 443},
							},
						},
					}},
				},
			},
		})
	}
	return &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ns},
		Spec:       networkingv1.IngressSpec{Rules: rules, TLS: tls},
	}
}

func tlsSecret(ns, name string) *corev1.Secret {
	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ns},
		Type:       corev1.SecretTypeTLS,
	}
}

func TestCollector_FullyCovered(t *testing.T) {
	fakeClient := fake.NewClientset(
		ingressFixture("web", "site", []string{"app.example.com"}, []networkingv1.IngressTLS{
			{Hosts: []string{"app.example.com"}, SecretName: "site-tls"},
		}),
		tlsSecret("web", "site-tls"),
	)
	c := &Collector{ClientSet: fakeClient}

	rep, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ReportKind, rep.Kind)

	summary := rep.Data.(Summary)
	require.Len(t, summary.Ingresses, 1)
	assert.True(t, summary.Ingresses[0].Covered)
	assert.Zero(t, summary.Uncovered)
}

func TestCollector_UncoveredHostAndMissingSecret(t *testing.T) {
	fakeClient := fake.NewClientset(
		ingressFixture("web", "site", []string{"app.example.com", "api.example.com"}, []networkingv1.IngressTLS{
			{Hosts: []string{"app.example.com"}, SecretName: "gone-tls"},
		}),
	)
	c := &Collector{ClientSet: fakeClient}

	rep, err := c.Collect(context.Background())
	require.NoError(t, err)

	summary := rep.Data.(Summary)
	require.Len(t, summary.Ingresses, 1)
	status := summary.Ingresses[0]
	assert.False(t, status.Covered)
	assert.Equal(t, []string{"api.example.com"}, status.UncoveredHosts)
	assert.Equal(t, []string{"gone-tls"}, status.MissingSecrets)
	assert.Equal(t, 1, summary.Uncovered)
}

func TestCollector_WrongSecretType(t *testing.T) {
	opaque := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "site-tls", Namespace: "web"},
		Type:       corev1.SecretTypeOpaque,
	}
	fakeClient := fake.NewClientset(
		ingressFixture("web", "site", []string{"app.example.com"}, []networkingv1.IngressTLS{
			{Hosts: []string{"app.example.com"}, SecretName: "site-tls"},
		}),
		opaque,
	)
	c := &Collector{ClientSet: fakeClient}

	rep, err := c.Collect(context.Background())
	require.NoError(t, err)

	status := rep.Data.(Summary).Ingresses[0]
	assert.False(t, status.Covered)
	assert.Equal(t, []string{"site-tls"}, status.WrongTypeSecrets)
}

func TestHostCovered(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		tlsHosts []string
		want     bool
	}{
		{name: "exact", host: "a.example.com", tlsHosts: []string{"a.example.com"}, want: true},
		{name: "wildcard single label", host: "a.example.com", tlsHosts: []string{"*.example.com"}, want: true},
		{name: "wildcard does not cover apex", host: "example.com", tlsHosts: []string{"*.example.com"}, want: false},
		{name: "wildcard does not cover two labels", host: "a.b.example.com", tlsHosts: []string{"*.example.com"}, want: false},
		{name: "no tls hosts", host: "a.example.com", tlsHosts: nil, want: false},
		{name: "unrelated domain", host: "a.other.org", tlsHosts: []string{"*.example.com"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hostCovered(tt.host, tt.tlsHosts))
		})
	}
}

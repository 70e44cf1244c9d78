package screening

import "strings"

const sampleResume = `Jane Doe
Email: jane.doe@example.com
Phone: +1 555-123-4567

Summary
Software engineer focused on backend services and developer tooling.

Education: BSc Computer Science, MIT, 2020
Experience: 3 years as Software Engineer
Skills: Python, React, Docker

Projects
- Built a resume parsing service in Python
- Designed a React dashboard for hiring teams
- Containerised services with Docker
- Automated deployments for staging and production
- Mentored two junior engineers

Certifications
AWS Certified Developer, 2021`

const invoicePage = `ACME Supplies Ltd
Invoice Number: INV-2024-0042
Bill To: Northwind Traders
Due Date: 15/03/2024
Payment Terms: Net 30
Item Description Quantity Unit Price
Office chairs 4 x 120.00
Subtotal: 480.00
Tax: 48.00
Amount Due: 528.00
Thank you for your business.
`

func sampleInvoice() string {
	return strings.Repeat(invoicePage, 6)
}
